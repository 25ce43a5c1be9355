package service

import "golang.org/x/crypto/bcrypt"

// Credentials is the credential service: salted one-way hashing with a
// tunable cost factor. Stateless, no I/O.
type Credentials struct {
	cost int
}

// NewCredentials returns a Credentials using the given bcrypt cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewCredentials(cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{cost: cost}
}

// Hash derives a salted hash of password. Each call produces a distinct
// hash for the same input.
func (c *Credentials) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. Comparison goes through
// the hashing primitive, never plain byte equality.
func (c *Credentials) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
