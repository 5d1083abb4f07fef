// Package naming generates collision-resistant names for Azure resources.
package naming

import (
	"regexp"
	"strings"

	"github.com/giantswarm/microerror"
	"github.com/google/uuid"
)

const (
	// DefaultSuffixLength is the number of random hex characters appended to a
	// prefix. Eight characters keep vault names well below the 24 character
	// limit for the default prefixes.
	DefaultSuffixLength = 8

	maxSuffixLength = 32
)

var vaultNameRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]{1,22}[a-zA-Z0-9]$`)

type Config struct {
	SuffixLength int
}

type Generator struct {
	suffixLength int
}

func New(config Config) (*Generator, error) {
	if config.SuffixLength == 0 {
		config.SuffixLength = DefaultSuffixLength
	}
	if config.SuffixLength < 0 || config.SuffixLength > maxSuffixLength {
		return nil, microerror.Maskf(invalidConfigError, "%T.SuffixLength must be between 1 and %d", config, maxSuffixLength)
	}

	g := &Generator{
		suffixLength: config.SuffixLength,
	}

	return g, nil
}

// Name returns prefix followed by a hyphen and a random hex suffix, e.g.
// "vault1-3f9c0a1b".
func (g *Generator) Name(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")

	return prefix + "-" + suffix[:g.suffixLength]
}

// ValidateVaultName checks the Key Vault naming rules: 3 to 24 characters,
// starting with a letter, ending with a letter or digit, alphanumerics and
// hyphens only, no consecutive hyphens.
func ValidateVaultName(name string) error {
	if !vaultNameRegexp.MatchString(name) {
		return microerror.Maskf(invalidNameError, "vault name %#q must be 3-24 alphanumerics or hyphens, start with a letter and end with a letter or digit", name)
	}
	if strings.Contains(name, "--") {
		return microerror.Maskf(invalidNameError, "vault name %#q must not contain consecutive hyphens", name)
	}

	return nil
}
