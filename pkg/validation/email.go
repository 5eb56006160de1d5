package validation

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"golang.org/x/text/unicode/norm"

	"go-screening-backend/pkg/apperror"
)

var emailRegex = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// domainFixThreshold is the WRatio score at which a mistyped domain is
// silently corrected to a common provider.
const domainFixThreshold = 92

var commonDomains = []string{
	"gmail.com", "yahoo.com", "outlook.com", "hotmail.com", "icloud.com",
	"proton.me", "protonmail.com", "live.com", "aol.com", "pm.me",
}

var emailValidate = validator.New()

// CleanEmail normalizes unicode (NFKC), strips invisible characters and
// extracts the first address-shaped substring so "my email is x@y.com"
// still validates.
func CleanEmail(raw string) string {
	s := EnsureText(norm.NFKC.String(raw))
	if m := emailRegex.FindString(s); m != "" {
		return m
	}
	return s
}

// ValidateEmail returns the canonical address: extracted, domain
// lowercased and fuzzy-corrected against common providers. Syntax is
// checked unconditionally; deliverability is a separate step.
func ValidateEmail(raw string) (string, error) {
	addr := CleanEmail(raw)
	at := strings.LastIndex(addr, "@")
	if at > 0 && at < len(addr)-1 {
		local, domain := addr[:at], strings.ToLower(addr[at+1:])
		addr = local + "@" + fixDomain(domain)
	}
	if err := emailValidate.Var(addr, "required,email"); err != nil {
		return "", Reject("email", "Please provide a valid email address.")
	}
	return addr, nil
}

func fixDomain(domain string) string {
	best, bestScore := "", 0
	for _, d := range commonDomains {
		if d == domain {
			return domain
		}
		if score := fuzzy.WRatio(domain, d); score > bestScore {
			best, bestScore = d, score
		}
	}
	if bestScore >= domainFixThreshold {
		return best
	}
	return domain
}

// MXResolver is satisfied by *net.Resolver.
type MXResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// CheckDeliverability confirms the domain publishes MX records. It is an
// independently failable step: any failure degrades to a warning at the
// call site, never a rejection.
func CheckDeliverability(ctx context.Context, resolver MXResolver, addr string) error {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return nil
	}
	domain := addr[at+1:]
	records, err := resolver.LookupMX(ctx, domain)
	if err != nil {
		return apperror.Degraded("mx-lookup", err)
	}
	if len(records) == 0 {
		return apperror.Degraded("mx-lookup", fmt.Errorf("no MX records for %s", domain))
	}
	return nil
}
