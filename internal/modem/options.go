package modem

// Options carries the transmit-side tuning knobs. Durations below zero are
// clamped to zero and zero-valued fields fall back to the AFSK1200
// defaults, so the zero value is usable.
type Options struct {
	BaudRate     int     // AFSK bitrate; <= 0 falls back to 1200
	TXDelayMS    float64 // preamble duration, translated to flag count
	TXTailMS     float64 // postamble duration, translated to flag count
	Gain         float64 // linear output gain; 0 means unset and becomes 1.0
	Preemphasis  bool    // 75 microsecond high-pass before gain
	StartSilence float64 // leading silence, seconds
	EndSilence   float64 // trailing silence, seconds
	FMark        float64 // mark tone, conventionally 1200 Hz
	FSpace       float64 // space tone, conventionally 2200 Hz
}

func (o *Options) normalize() {
	if o.BaudRate <= 0 {
		o.BaudRate = 1200
	}
	if o.TXDelayMS < 0 {
		o.TXDelayMS = 0
	}
	if o.TXTailMS < 0 {
		o.TXTailMS = 0
	}
	if o.Gain == 0 {
		o.Gain = 1.0
	}
	if o.StartSilence < 0 {
		o.StartSilence = 0
	}
	if o.EndSilence < 0 {
		o.EndSilence = 0
	}
	if o.FMark == 0 {
		o.FMark = 1200
	}
	if o.FSpace == 0 {
		o.FSpace = 2200
	}
}

// flagCounts converts the preamble and postamble durations to HDLC flag
// counts at the configured baud rate, never below one flag each.
func (o Options) flagCounts() (preamble, postamble int) {
	msPerFlag := 8000.0 / float64(o.BaudRate)

	preamble = int(o.TXDelayMS / msPerFlag)
	if preamble < 1 {
		preamble = 1
	}
	postamble = int(o.TXTailMS / msPerFlag)
	if postamble < 1 {
		postamble = 1
	}
	return preamble, postamble
}
