package config

type DemoConfig struct {
	VoiceDataFile string
	DemoPageFile  string
}

func GetDemoConfig() *DemoConfig {
	return &DemoConfig{
		VoiceDataFile: getEnv("VOICE_DATA_FILE", "public/voice_member.json"),
		DemoPageFile:  getEnv("DEMO_PAGE_FILE", "public/voice-demo.html"),
	}
}
