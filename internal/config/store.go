package config

// Store persists non-secret config keys. Values are kept as the text given to
// `compass config set`; the key table parses them on load.
type Store interface {
	Lookup(key string) (value string, ok bool, err error)
	Save(key, value string) error
}
