package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Country is a single entry of the checkout country selector
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

var countries []Country

// LoadCountries reads the (name, code) reference file once at startup.
// Each line holds "<name>, <code>"; blank lines are skipped.
func LoadCountries(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open countries file: %w", err)
	}
	defer file.Close()

	var loaded []Country
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ", ", 2)
		if len(parts) != 2 {
			return fmt.Errorf("malformed countries line: %q", line)
		}
		loaded = append(loaded, Country{Name: parts[0], Code: parts[1]})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read countries file: %w", err)
	}

	countries = loaded
	return nil
}

// GetCountries returns the loaded country list
func GetCountries() []Country {
	return countries
}

// SetCountries sets the country list (primarily for testing)
func SetCountries(list []Country) {
	countries = list
}
