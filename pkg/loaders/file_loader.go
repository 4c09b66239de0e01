package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type FileLoader struct {
	fileNames []string
}

func NewFileLoader(fileNames ...string) *FileLoader {
	return &FileLoader{
		fileNames: fileNames,
	}
}

func (f *FileLoader) Load(dest any) error {
	for _, file := range f.fileNames {
		if _, err := os.Stat(file); err != nil {
			continue // optional files, e.g. a missing .env is not an error
		}

		var err error
		if strings.HasSuffix(file, ".json") {
			err = loadJSON(dest, file)
		} else {
			err = loadDotEnv(dest, file)
		}
		if err != nil {
			return fmt.Errorf("could not load file: %s: %s", file, err.Error())
		}
	}
	return nil
}

func loadDotEnv(dest any, file string) error {
	cfg, err := godotenv.Read(file)
	if err != nil {
		return fmt.Errorf("unable to read config file: %s: %s", file, err.Error())
	}

	return applyEnvTags(dest, func(key string) (string, bool) {
		value, ok := cfg[key]
		return value, ok
	})
}

func loadJSON(dest any, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read config file: %s: %s", file, err.Error())
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse config file: %s", err.Error())
	}

	return nil
}
