package storage

// KV is the minimal key-value contract shared by Store and RedisKV.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// PrefixedKV namespaces every key of an underlying KV.
type PrefixedKV struct {
	kv     KV
	prefix string
}

// Prefixed returns a view of kv where key k is stored as prefix+k.
func Prefixed(kv KV, prefix string) *PrefixedKV {
	return &PrefixedKV{kv: kv, prefix: prefix}
}

// SessionPrefix is the namespace for one wizard session.
func SessionPrefix(sessionID string) string {
	return "session:" + sessionID + ":"
}

func (p *PrefixedKV) Get(key string) (string, bool, error) { return p.kv.Get(p.prefix + key) }
func (p *PrefixedKV) Set(key, value string) error          { return p.kv.Set(p.prefix+key, value) }
func (p *PrefixedKV) Delete(key string) error              { return p.kv.Delete(p.prefix + key) }
