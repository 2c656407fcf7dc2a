package logfields

import "log/slog"

// Canonical log field names shared by the pipeline, CLI and dev server.
const (
	KeyRoot       = "root"
	KeyPath       = "path"
	KeyMode       = "mode"
	KeyStage      = "stage"
	KeyProvider   = "provider"
	KeyDurationMS = "duration_ms"
	KeyRevision   = "revision"
	KeyAddr       = "addr"
	KeyError      = "error"
)

func Root(r string) slog.Attr         { return slog.String(KeyRoot, r) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Provider(p string) slog.Attr     { return slog.String(KeyProvider, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Revision(id string) slog.Attr    { return slog.String(KeyRevision, id) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
