package port

// StateStore is an externally owned key-value store holding the browser state.
// Set applies every pair of the transaction at once.
type StateStore interface {
	Get(key string) (string, bool)
	Set(tx map[string]string)
	Encode() string
}
