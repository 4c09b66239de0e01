package override

import (
	"errors"
	"fmt"
	"sort"

	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/pkg/metrics"
	"github.com/browsekit/navigator/pkg/persistence"
)

var (
	ErrOverrideNotFound = errors.New("override entry not found")
)

// Repo holds the manual DNS override table. Entries are keyed on hostname,
// creating an entry for a known hostname replaces it.
type Repo struct {
	store persistence.Store[model.Override]
}

var _ persistence.Repository[model.Override] = (*Repo)(nil)

// DefaultEntries are present from startup so a fresh shell shows the
// override mechanism working without any configuration.
func DefaultEntries() []model.Override {
	return []model.Override{
		{Hostname: "httpbin.org", IP: "54.91.118.50"},
		{Hostname: "example.com", IP: "93.184.216.34"},
		{Hostname: "httpforever.com", IP: "195.154.146.186"},
	}
}

func NewRepo(store persistence.Store[model.Override], seeds ...model.Override) (*Repo, error) {
	r := &Repo{store: store}

	for _, entry := range seeds {
		if err := r.Create(entry); err != nil {
			return nil, fmt.Errorf("failed to seed override table: %w", err)
		}
	}

	return r, nil
}

func (r *Repo) Create(entry model.Override) error {
	if err := r.store.Save(entry.Key(), entry); err != nil {
		return fmt.Errorf("failed to store override: %w", err)
	}

	r.updateGauge()
	return nil
}

func (r *Repo) Read(hostname string) (model.Override, error) {
	entry, err := r.store.Load(hostname)
	if err != nil {
		if errors.Is(err, persistence.ErrKeyNotFound) {
			return model.Override{}, fmt.Errorf("%w: %s", ErrOverrideNotFound, hostname)
		}
		return model.Override{}, fmt.Errorf("failed to read from storage: %w", err)
	}

	return entry, nil
}

// ReadAll returns the entries sorted by hostname for stable listings.
func (r *Repo) ReadAll() ([]model.Override, error) {
	entries, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read from storage: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Hostname < entries[j].Hostname
	})

	return entries, nil
}

// Delete is idempotent, removing an unknown hostname is not an error.
func (r *Repo) Delete(hostname string) error {
	if err := r.store.Delete(hostname); err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}

	r.updateGauge()
	return nil
}

func (r *Repo) Clear() error {
	if err := r.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear override table: %w", err)
	}

	r.updateGauge()
	return nil
}

// Entries returns a snapshot map of hostname to address. Mutating the
// returned map does not touch the repository.
func (r *Repo) Entries() (map[string]string, error) {
	entries, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read from storage: %w", err)
	}

	snapshot := make(map[string]string, len(entries))
	for _, entry := range entries {
		snapshot[entry.Hostname] = entry.IP
	}

	return snapshot, nil
}

func (r *Repo) updateGauge() {
	if entries, err := r.store.LoadAll(); err == nil {
		metrics.OverrideEntries.Set(float64(len(entries)))
	}
}
