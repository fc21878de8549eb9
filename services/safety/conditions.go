package safety

import (
	"sort"
	"strconv"
	"strings"
)

type Condition string

const (
	Diabetic     Condition = "diabetic"
	Renal        Condition = "renal"
	Cardiac      Condition = "cardiac"
	Hypertensive Condition = "hypertensive"
)

// free-text markers looked up in the medical history, lower case
var conditionMarkers = map[Condition][]string{
	Diabetic:     {"diabet", "sugar"},
	Renal:        {"renal", "kidney", "ckd"},
	Cardiac:      {"cardiac", "heart"},
	Hypertensive: {"hypertens", "high bp", "blood pressure"},
}

// Conditions is the set of clinical tags attached to a patient.
type Conditions map[Condition]bool

func NewConditions(tags ...Condition) Conditions {
	c := make(Conditions, len(tags))
	for _, tag := range tags {
		c[tag] = true
	}
	return c
}

func (c Conditions) Has(tag Condition) bool {
	return c[tag]
}

func (c Conditions) Add(tag Condition) {
	c[tag] = true
}

// List returns the tags sorted, for logging.
func (c Conditions) List() []string {
	var out []string
	for tag, ok := range c {
		if ok {
			out = append(out, string(tag))
		}
	}
	sort.Strings(out)
	return out
}

// ParseConditions keeps the substring matching over free-text history.
func ParseConditions(history string) Conditions {
	text := strings.ToLower(history)
	c := NewConditions()
	for tag, markers := range conditionMarkers {
		for _, marker := range markers {
			if strings.Contains(text, marker) {
				c.Add(tag)
				break
			}
		}
	}
	return c
}

// HypertensiveReading reports a "systolic/diastolic" reading at or above 140/90.
func HypertensiveReading(bp string) bool {
	parts := strings.Split(strings.TrimSpace(bp), "/")
	if len(parts) != 2 {
		return false
	}
	systolic, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return false
	}
	diastolic, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return false
	}
	return systolic >= 140 || diastolic >= 90
}

// ParseAllergies splits a comma separated declaration, "none" means no allergies.
func ParseAllergies(text string) []string {
	var allergens []string
	for _, part := range strings.Split(text, ",") {
		allergen := strings.ToLower(strings.TrimSpace(part))
		if allergen == "" || allergen == "none" {
			continue
		}
		allergens = append(allergens, allergen)
	}
	return allergens
}
