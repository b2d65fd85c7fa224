package notifier

// TextNotifier defines a minimal text notification interface.
// It is intentionally small so callers never depend on a concrete
// implementation (e.g. Telegram).
type TextNotifier interface {
	SendText(text string) error
}
