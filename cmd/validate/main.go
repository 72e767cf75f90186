package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/nitecrawlers/pkg/recognition"
	"github.com/jwebster45206/nitecrawlers/pkg/textfilter"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <catalog.json> [more.json...]\n", os.Args[0])
		os.Exit(1)
	}

	validator := NewCatalogValidator()
	failed := false
	for _, filename := range os.Args[1:] {
		fmt.Printf("Validating %s...\n", filename)
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}

	fmt.Println("Catalog files are valid!")
}

type CatalogValidator struct {
	filter *textfilter.ProfanityFilter
	errors []string
}

func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{filter: textfilter.NewProfanityFilter()}
}

var (
	snakeCase = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
	category  = regexp.MustCompile(`^[a-z]+$`)
)

func (v *CatalogValidator) validateFile(filename string) error {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("catalog file must have .json extension: %s", baseName)
	}
	if !snakeCase.MatchString(strings.TrimSuffix(baseName, ".json")) {
		return fmt.Errorf("catalog filename '%s' must be lowercase snake_case (e.g., school_supplies.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var c recognition.Catalog
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&c); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.errors = nil
	if err := c.Validate(); err != nil {
		var joined interface{ Unwrap() []error }
		if errors.As(err, &joined) {
			for _, e := range joined.Unwrap() {
				v.errors = append(v.errors, e.Error())
			}
		} else {
			v.errors = append(v.errors, err.Error())
		}
	}
	v.validateItems(&c)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

// validateItems adds the checks that only matter for hand-written files.
func (v *CatalogValidator) validateItems(c *recognition.Catalog) {
	for i, it := range c.Items {
		if it.Category != "" && !category.MatchString(it.Category) {
			v.errors = append(v.errors, fmt.Sprintf("item %d (%s): category '%s' must be a single lowercase word", i, it.Name, it.Category))
		}
		v.checkKidSafe(i, it.Name, "name", it.Name)

		fi := it.FinancialInfo
		if fi == nil {
			continue
		}
		if strings.TrimSpace(fi.SimpleDefinition) == "" {
			v.errors = append(v.errors, fmt.Sprintf("item %d (%s): financialInfo.simpleDefinition is required", i, it.Name))
		}
		if strings.TrimSpace(fi.KidExplanation) == "" {
			v.errors = append(v.errors, fmt.Sprintf("item %d (%s): financialInfo.kidExplanation is required", i, it.Name))
		}
		v.checkKidSafe(i, it.Name, "financialInfo.simpleDefinition", fi.SimpleDefinition)
		v.checkKidSafe(i, it.Name, "financialInfo.kidExplanation", fi.KidExplanation)
	}
}

func (v *CatalogValidator) checkKidSafe(i int, name, field, text string) {
	if v.filter.ContainsProfanity(text) {
		v.errors = append(v.errors, fmt.Sprintf("item %d (%s): %s is not kid-safe: %q", i, name, field, text))
	}
}
