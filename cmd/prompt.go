package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// askText prompts the user for a text value with an optional default.
func askText(label, defaultVal string) (string, error) {
	p := promptui.Prompt{
		Label:   label,
		Default: defaultVal,
	}
	result, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %q failed: %w", label, err)
	}
	return result, nil
}

// askPassword prompts for a secret value with character masking.
func askPassword(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Mask:  '•',
	}
	result, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %q failed: %w", label, err)
	}
	return result, nil
}

// askSelect presents a list of items and returns the selected index and value.
func askSelect(label string, items []string) (int, string, error) {
	s := promptui.Select{
		Label: label,
		Items: items,
	}
	idx, val, err := s.Run()
	if err != nil {
		return -1, "", fmt.Errorf("prompt %q failed: %w", label, err)
	}
	return idx, val, nil
}
