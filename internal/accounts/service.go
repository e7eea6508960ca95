package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/bilanz/internal/model"
)

// StandardAccount is a catalog entry used to pre-fill account creation.
// Category is the catalog's own label, which is finer than the Bilanz
// category tree and also covers Erfolgskonten.
type StandardAccount struct {
	Number   string
	Name     string
	Type     model.AccountType
	Category string
}

// Service provides in-memory lookup over a chart of accounts.
type Service struct {
	accounts []StandardAccount
	byNumber map[string]StandardAccount
}

// NewService creates a Service from a slice of accounts. Accounts are kept
// sorted by number.
func NewService(accounts []StandardAccount) *Service {
	sorted := append([]StandardAccount(nil), accounts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	byNumber := make(map[string]StandardAccount, len(sorted))
	for _, a := range sorted {
		byNumber[a.Number] = a
	}
	return &Service{accounts: sorted, byNumber: byNumber}
}

// Load reads chart-of-accounts.csv from a repo root and returns a Service.
func Load(repoRoot string) (*Service, error) {
	path := ChartPath(repoRoot)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// ChartPath is where a project keeps its chart of accounts.
func ChartPath(repoRoot string) string {
	return filepath.Join(repoRoot, "accounts", "chart-of-accounts.csv")
}

// All returns all accounts ordered by number.
func (s *Service) All() []StandardAccount {
	return s.accounts
}

// Get returns an account by number.
func (s *Service) Get(number string) (StandardAccount, bool) {
	a, ok := s.byNumber[number]
	return a, ok
}

// Exists reports whether an account number is in the catalog.
func (s *Service) Exists(number string) bool {
	_, ok := s.byNumber[number]
	return ok
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []StandardAccount {
	var result []StandardAccount
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// ByCategory returns all accounts whose category label matches, ignoring
// case.
func (s *Service) ByCategory(category string) []StandardAccount {
	var result []StandardAccount
	for _, a := range s.accounts {
		if strings.EqualFold(a.Category, category) {
			result = append(result, a)
		}
	}
	return result
}

// Categories returns the distinct category labels, sorted.
func (s *Service) Categories() []string {
	seen := map[string]bool{}
	var cats []string
	for _, a := range s.accounts {
		if a.Category == "" || seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		cats = append(cats, a.Category)
	}
	sort.Strings(cats)
	return cats
}

// InRange returns the accounts with start <= number <= end.
func (s *Service) InRange(start, end string) []StandardAccount {
	var result []StandardAccount
	for _, a := range s.accounts {
		if start <= a.Number && a.Number <= end {
			result = append(result, a)
		}
	}
	return result
}

// Search matches query case-insensitively against number, name and
// category. Results are ordered by number.
func (s *Service) Search(query string) []StandardAccount {
	q := strings.ToLower(strings.TrimSpace(query))
	var result []StandardAccount
	for _, a := range s.accounts {
		if strings.Contains(a.Number, q) ||
			strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.Category), q) {
			result = append(result, a)
		}
	}
	return result
}

// Starter returns the recommended starter accounts present in the catalog.
func (s *Service) Starter() []StandardAccount {
	var result []StandardAccount
	for _, n := range starterNumbers {
		if a, ok := s.byNumber[n]; ok {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(ChartPath(repoRoot))
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
