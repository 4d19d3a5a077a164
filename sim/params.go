package sim

import (
	"errors"
	"fmt"
	"math"
)

// Parameters groups the configuration of one clinic run.
type Parameters struct {
	HoursOpen       float64         // admissions stop at this simulated time (>= 0)
	NExamRooms      int             // number of exam rooms (>= 1)
	ArrivalTimeDist DurationSampler // inter-arrival gap distribution
	ExamTimeDist    DurationSampler // exam duration distribution
}

// NewParameters builds Parameters with exponential arrival and exam distributions.
func NewParameters(hoursOpen float64, nExamRooms int, meanArrivalTime, meanExamDuration float64) Parameters {
	return Parameters{
		HoursOpen:       hoursOpen,
		NExamRooms:      nExamRooms,
		ArrivalTimeDist: NewExponential(meanArrivalTime),
		ExamTimeDist:    NewExponential(meanExamDuration),
	}
}

type validator interface {
	Validate() error
}

// Validate checks that the parameters describe a runnable clinic.
// A zero HoursOpen is accepted: the clinic closes before the first arrival.
func (p Parameters) Validate() error {
	if p.HoursOpen < 0 || math.IsNaN(p.HoursOpen) || math.IsInf(p.HoursOpen, 0) {
		return fmt.Errorf("hours open must be a finite value >= 0, got %v", p.HoursOpen)
	}
	if p.NExamRooms < 1 {
		return fmt.Errorf("number of exam rooms must be >= 1, got %d", p.NExamRooms)
	}
	if p.ArrivalTimeDist == nil {
		return errors.New("arrival time distribution is not set")
	}
	if p.ExamTimeDist == nil {
		return errors.New("exam time distribution is not set")
	}
	if v, ok := p.ArrivalTimeDist.(validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("arrival time distribution: %w", err)
		}
	}
	if v, ok := p.ExamTimeDist.(validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("exam time distribution: %w", err)
		}
	}
	return nil
}
