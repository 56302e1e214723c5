package booking

import "strings"

// OtherInsurer is the sentinel a patient selects to declare an insurer the
// clinic does not list. Coverage for it is always out-of-network, even when
// the free-text name happens to match an accepted insurer.
const OtherInsurer = "Other"

// InsurerChoice is the patient's declared coverage: either a known insurer
// picked from the list, or a custom "Other" entry.
type InsurerChoice struct {
	other bool
	name  string
}

// Known returns a choice for an insurer picked from the clinic's list.
func Known(name string) InsurerChoice {
	return InsurerChoice{name: strings.TrimSpace(name)}
}

// Other returns a choice for a custom insurer name.
func Other(customName string) InsurerChoice {
	return InsurerChoice{other: true, name: strings.TrimSpace(customName)}
}

// DeclaredChoice builds the choice from the raw form fields: the declared
// insurer and the free-text alternative used when declared == OtherInsurer.
func DeclaredChoice(declared, customName string) InsurerChoice {
	if strings.TrimSpace(declared) == OtherInsurer {
		return Other(customName)
	}
	return Known(declared)
}

// IsOther reports whether the patient declared a custom insurer.
func (c InsurerChoice) IsOther() bool { return c.other }

// Name returns the effective insurer name: the declared one, or the custom
// name for an "Other" choice.
func (c InsurerChoice) Name() string { return c.name }

// OutOfNetwork classifies coverage: true when the declared insurer is not in
// the doctor's accepted set. "Other" is unconditionally out-of-network.
func OutOfNetwork(accepted map[string]struct{}, choice InsurerChoice) bool {
	if choice.other {
		return true
	}
	_, ok := accepted[choice.name]
	return !ok
}
