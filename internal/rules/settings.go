package rules

import "strings"

type Settings struct {
	Disabled map[string]bool
}

var rsettings = Settings{
	Disabled: map[string]bool{},
}

func SetSettings(s Settings) {
	if s.Disabled == nil {
		s.Disabled = map[string]bool{}
	}
	rsettings = s
}

// DisabledSet builds the lookup used by SetSettings from a config list.
func DisabledSet(ids []string) map[string]bool {
	out := map[string]bool{}
	for _, id := range ids {
		if id = strings.ToUpper(strings.TrimSpace(id)); id != "" {
			out[id] = true
		}
	}
	return out
}
