package config

// VoiceMap translates OpenAI voice names into vendor voice IDs. Unknown
// names pass through unchanged so callers can address vendor voices directly.
type VoiceMap map[string]string

func (m VoiceMap) Resolve(name string) string {
	if id, ok := m[name]; ok {
		return id
	}

	return name
}

// GetVoiceMapping builds the voice table, each entry overridable by env.
func GetVoiceMapping() VoiceMap {
	return VoiceMap{
		"alloy":   getEnv("VOICE_ALLOY", "voice1"),
		"echo":    getEnv("VOICE_ECHO", "voice2"),
		"fable":   getEnv("VOICE_FABLE", "voice3"),
		"onyx":    getEnv("VOICE_ONYX", "voice4"),
		"nova":    getEnv("VOICE_NOVA", "voice5"),
		"shimmer": getEnv("VOICE_SHIMMER", "voice6"),
		"ash":     getEnv("VOICE_ASH", "voice6"),
		"ballad":  getEnv("VOICE_BALLAD", "voice6"),
		"coral":   getEnv("VOICE_CORAL", "voice6"),
		"sage":    getEnv("VOICE_SAGE", "voice6"),
		"verse":   getEnv("VOICE_VERSE", "voice6"),
		"marin":   getEnv("VOICE_MARIN", "voice6"),
		"cedar":   getEnv("VOICE_CEDAR", "voice6"),
	}
}

// FormatMap translates container names into response Content-Type values.
type FormatMap map[string]string

func (m FormatMap) ContentType(format string) string {
	if mime, ok := m[format]; ok {
		return mime
	}

	return "audio/mpeg"
}

func GetFormatMapping() FormatMap {
	return FormatMap{
		"mp3":  "audio/mpeg",
		"opus": "audio/opus",
		"aac":  "audio/aac",
		"flac": "audio/flac",
		"wav":  "audio/wav",
		"amr":  "audio/amr",
	}
}
