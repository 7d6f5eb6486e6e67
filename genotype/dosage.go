// Package genotype turns raw per-individual genotype text, such as "0|1" or
// "1/1:35:0,2", into a dosage: the fraction of called alleles that are not
// the reference allele.
package genotype

import (
	"strings"
)

// Reference is the allele text of the reference allele.
const Reference = "0"

// Decode returns the dosage of a raw genotype column. Only the text before the
// first ':' is considered; alleles are split on '|' when the text is phased
// and on '/' otherwise. Any allele other than the reference allele counts as
// alternate, so "./." decodes to 1.0.
//
// Empty allele text cannot be decoded: Decode then returns 0 and false, and
// callers that keep going treat the individual as homozygous reference.
func Decode(raw string) (dosage float64, ok bool) {
	gt, _, _ := strings.Cut(raw, ":")
	if gt == "" {
		return 0, false
	}

	sep := "/"
	if strings.Contains(gt, "|") {
		sep = "|"
	}

	alleles := strings.Split(gt, sep)
	alt := 0
	for _, allele := range alleles {
		if allele != Reference {
			alt++
		}
	}

	return float64(alt) / float64(len(alleles)), true
}
