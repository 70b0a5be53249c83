package service

import (
	"regexp"
	"strings"
)

// Fallback values for fields the free-text parser cannot extract.
const (
	DefaultDosage       = "As directed"
	DefaultInstructions = "As directed by doctor"

	// DefaultMedicationDays is the assumed course length when no end date
	// can be inferred from the text.
	DefaultMedicationDays = 7
)

// ParsedMedication is one medication extracted from the free-text
// "medications prescribed" field of a completion report.
type ParsedMedication struct {
	Name         string
	Dosage       string
	Instructions string
}

// nameDosagePattern matches the "Name (Dosage) Instructions" form.
var nameDosagePattern = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)\s*(.*)$`)

// ParseMedications extracts medication line items from free text, one per
// line. Supported field delimiters within a line: " - ", ", ", or
// "Name (Dosage) Instructions". Parsing is best-effort: malformed lines
// are never rejected, missing fields fall back to the defaults.
func ParseMedications(text string) []ParsedMedication {
	var out []ParsedMedication
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, parseMedicationLine(line))
	}
	return out
}

func parseMedicationLine(line string) ParsedMedication {
	med := ParsedMedication{
		Dosage:       DefaultDosage,
		Instructions: DefaultInstructions,
	}

	switch {
	case strings.Contains(line, " - "):
		parts := strings.SplitN(line, " - ", 3)
		med.Name = strings.TrimSpace(parts[0])
		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			med.Dosage = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			med.Instructions = strings.TrimSpace(parts[2])
		}

	case nameDosagePattern.MatchString(line):
		m := nameDosagePattern.FindStringSubmatch(line)
		med.Name = strings.TrimSpace(m[1])
		if strings.TrimSpace(m[2]) != "" {
			med.Dosage = strings.TrimSpace(m[2])
		}
		if strings.TrimSpace(m[3]) != "" {
			med.Instructions = strings.TrimSpace(m[3])
		}

	case strings.Contains(line, ", "):
		parts := strings.SplitN(line, ", ", 3)
		med.Name = strings.TrimSpace(parts[0])
		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			med.Dosage = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			med.Instructions = strings.TrimSpace(parts[2])
		}

	default:
		med.Name = line
	}

	if med.Name == "" {
		med.Name = line
	}
	return med
}
