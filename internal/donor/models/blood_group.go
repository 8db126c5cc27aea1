package models

import (
	"strings"

	dErrors "donormatch/pkg/domain-errors"
)

// BloodGroup is one of the eight ABO/Rh combinations.
type BloodGroup string

const (
	GroupAPos  BloodGroup = "A+"
	GroupANeg  BloodGroup = "A-"
	GroupBPos  BloodGroup = "B+"
	GroupBNeg  BloodGroup = "B-"
	GroupABPos BloodGroup = "AB+"
	GroupABNeg BloodGroup = "AB-"
	GroupOPos  BloodGroup = "O+"
	GroupONeg  BloodGroup = "O-"

	// GroupUnknown buckets records whose group is missing or malformed so
	// they are still counted.
	GroupUnknown BloodGroup = "unknown"
)

// BloodGroups lists every group in display order. Read-models that must cover
// all groups iterate this slice rather than whatever groups appear in the input.
var BloodGroups = []BloodGroup{
	GroupAPos, GroupANeg,
	GroupBPos, GroupBNeg,
	GroupABPos, GroupABNeg,
	GroupOPos, GroupONeg,
}

// IsValid checks if the group is one of the supported enum values.
func (g BloodGroup) IsValid() bool {
	switch g {
	case GroupAPos, GroupANeg, GroupBPos, GroupBNeg, GroupABPos, GroupABNeg, GroupOPos, GroupONeg:
		return true
	}
	return false
}

func (g BloodGroup) String() string {
	return string(g)
}

// ParseBloodGroup accepts the usual spellings ("O-", "o neg", "AB positive").
func ParseBloodGroup(s string) (BloodGroup, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.NewReplacer(" ", "", "POSITIVE", "+", "NEGATIVE", "-", "POS", "+", "NEG", "-", "VE", "").Replace(v)
	g := BloodGroup(v)
	if !g.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid blood group: "+s)
	}
	return g, nil
}

func (g BloodGroup) abo() string {
	return strings.TrimRight(string(g), "+-")
}

func (g BloodGroup) rhPositive() bool {
	return strings.HasSuffix(string(g), "+")
}

// CanDonateTo reports red-cell compatibility between a donor group and a
// recipient group. O- is the universal donor, AB+ the universal recipient.
func (g BloodGroup) CanDonateTo(recipient BloodGroup) bool {
	if !g.IsValid() || !recipient.IsValid() {
		return false
	}
	if g.rhPositive() && !recipient.rhPositive() {
		return false
	}
	switch g.abo() {
	case "O":
		return true
	case "A":
		return recipient.abo() == "A" || recipient.abo() == "AB"
	case "B":
		return recipient.abo() == "B" || recipient.abo() == "AB"
	case "AB":
		return recipient.abo() == "AB"
	}
	return false
}
