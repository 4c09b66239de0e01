package checks

import (
	"errors"
	"math/rand"
)

type DryRun struct {
	*RoundTripper
}

func NewDryRun() *DryRun {
	return &DryRun{RoundTripper: NewRoundtripper()}
}

func (dr *DryRun) Check() error {
	dr.startRecording()
	defer dr.endRecording()

	if rand.Intn(10) == 0 { // 10% failure when dryrunning
		return errors.New("dry-run fail")
	}
	return nil
}
