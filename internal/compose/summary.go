package compose

import (
	"fmt"
	"strings"

	"github.com/BTreeMap/SehatSahara/internal/catalog"
	"github.com/BTreeMap/SehatSahara/internal/models"
)

// maxListedMedications is how many medications a summary lists by name.
const maxListedMedications = 3

// PrescriptionSummary renders p as a short localized summary. A nil
// prescription yields the no-prescription message.
func PrescriptionSummary(p *models.Prescription, lang models.Language) string {
	tmpl := catalog.Summary(lang)
	if p == nil {
		return tmpl.NoPrescription
	}
	if len(p.Medications) == 0 {
		return tmpl.NoMedications
	}

	doctor := strings.TrimSpace(p.DoctorName)
	if doctor == "" {
		doctor = tmpl.DefaultDoctor
	}

	var b strings.Builder
	fmt.Fprintf(&b, tmpl.Header, doctor)
	for i, med := range p.Medications {
		if i == maxListedMedications {
			break
		}
		b.WriteString("\n")
		b.WriteString(medicationLine(med, tmpl.UnknownName))
	}
	if extra := len(p.Medications) - maxListedMedications; extra > 0 {
		b.WriteString("\n\n")
		fmt.Fprintf(&b, tmpl.More, extra)
	}
	if p.Diagnosis != "" {
		b.WriteString("\n\n" + tmpl.Diagnosis + p.Diagnosis)
	}
	if p.Instructions != "" {
		b.WriteString("\n\n" + tmpl.Instructions + p.Instructions)
	}
	b.WriteString("\n\n" + tmpl.Closing)
	return b.String()
}

func medicationLine(med models.Medication, unknown string) string {
	name := strings.TrimSpace(med.Name)
	if name == "" {
		name = unknown
	}
	parts := []string{"•", name}
	for _, f := range []string{med.Dosage, med.Frequency} {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
