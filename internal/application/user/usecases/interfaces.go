package usecases

// SessionTokenGenerator mints bearer tokens and derives the hash that is
// stored instead of the token.
type SessionTokenGenerator interface {
	Generate() (plainToken, tokenHash string, err error)
	Hash(plainToken string) string
}
