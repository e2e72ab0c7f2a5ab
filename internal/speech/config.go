// Package speech plays audio: the timer alert tone, and recipes read aloud
// through Azure text-to-speech.
package speech

import "time"

// Default voice for TTS.
// Full list: https://learn.microsoft.com/en-us/azure/ai-services/speech-service/language-support
const DefaultVoice = "en-US-AvaNeural"

// Audio format returned by Azure and expected by the player.
const DefaultAudioFormat = "riff-24khz-16bit-mono-pcm"

// Audio parameters matching the default format.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Env var names for Azure Speech credentials.
const (
	EnvAzureSpeechKey    = "AZURE_SPEECH_KEY"
	EnvAzureSpeechRegion = "AZURE_SPEECH_REGION"
)

// Alert tone: two 800 Hz beeps of half a second, 100 ms apart, decaying
// from 0.3 gain.
const (
	AlertFrequency    = 800.0
	AlertToneDuration = 500 * time.Millisecond
	AlertGap          = 100 * time.Millisecond
	AlertGain         = 0.3
	AlertRepeats      = 2
)
