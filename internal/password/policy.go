package password

import (
	"fmt"
	"unicode"
)

// Policy enforces the registration password rules: minimum length plus at
// least one lowercase, uppercase, digit and non-alphanumeric character.
type Policy struct {
	MinLength int
}

var DefaultPolicy = Policy{MinLength: 8}

func (p Policy) Validate(password string) []string {
	var problems []string

	minLen := p.MinLength
	if minLen <= 0 {
		minLen = DefaultPolicy.MinLength
	}
	if len(password) < minLen {
		problems = append(problems, fmt.Sprintf("Passwords must be at least %d characters.", minLen))
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	if !lower {
		problems = append(problems, "Passwords must have at least one lowercase ('a'-'z').")
	}
	if !upper {
		problems = append(problems, "Passwords must have at least one uppercase ('A'-'Z').")
	}
	if !digit {
		problems = append(problems, "Passwords must have at least one digit ('0'-'9').")
	}
	if !symbol {
		problems = append(problems, "Passwords must have at least one non alphanumeric character.")
	}

	return problems
}
