package fixtures

import (
	"encoding/json"

	"golang.org/x/xerrors"
)

func ReadFile(pathToFile string) ([]byte, error) {
	data, err := FixturesFS.ReadFile(pathToFile)
	if err != nil {
		return nil, xerrors.Errorf("failed to read fixture %v: %w", pathToFile, err)
	}

	return data, nil
}

func MustReadFile(pathToFile string) []byte {
	data, err := ReadFile(pathToFile)
	if err != nil {
		panic(err)
	}

	return data
}

// ReadJson returns the fixture in compact form.
func ReadJson(pathToFile string) ([]byte, error) {
	data, err := ReadFile(pathToFile)
	if err != nil {
		return nil, err
	}

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, xerrors.Errorf("failed to parse fixture %v: %w", pathToFile, err)
	}

	return json.Marshal(value)
}
