package sim

import "fmt"

// Patient is a single visitor to the clinic.
//
// ID is the admission sequence number and the patient's index in the
// simulator's patient table. ServiceStart and Departure are set exactly once
// each, in that order.
type Patient struct {
	ID           int
	ArrivalTime  float64
	ServiceStart float64
	Departure    float64
	Room         int // serving exam room; -1 until service starts

	started  bool
	departed bool
}

// NewPatient creates a patient arriving at `arrival`.
func NewPatient(id int, arrival float64) *Patient {
	return &Patient{ID: id, ArrivalTime: arrival, Room: -1}
}

// StartService records that the patient enters room `room` at `now`.
func (p *Patient) StartService(now float64, room int) {
	if p.started {
		panic(fmt.Sprintf("%s: service already started at %v", p, p.ServiceStart))
	}
	if now < p.ArrivalTime {
		panic(fmt.Sprintf("%s: service start %v before arrival %v", p, now, p.ArrivalTime))
	}
	p.started = true
	p.ServiceStart = now
	p.Room = room
}

// Depart records that the patient leaves the clinic at `now`.
func (p *Patient) Depart(now float64) {
	if !p.started {
		panic(fmt.Sprintf("%s: departs without starting service", p))
	}
	if p.departed {
		panic(fmt.Sprintf("%s: already departed at %v", p, p.Departure))
	}
	if now < p.ServiceStart {
		panic(fmt.Sprintf("%s: departure %v before service start %v", p, now, p.ServiceStart))
	}
	p.departed = true
	p.Departure = now
}

// InService reports whether the patient is in a room.
func (p *Patient) InService() bool { return p.started && !p.departed }

// Departed reports whether the patient has left.
func (p *Patient) Departed() bool { return p.departed }

// WaitTime is the time spent in the wait queue. Zero until service starts.
func (p *Patient) WaitTime() float64 {
	if !p.started {
		return 0
	}
	return p.ServiceStart - p.ArrivalTime
}

// TimeInSystem is departure minus arrival. Zero until departure.
func (p *Patient) TimeInSystem() float64 {
	if !p.departed {
		return 0
	}
	return p.Departure - p.ArrivalTime
}

func (p *Patient) String() string {
	return fmt.Sprintf("Patient %d", p.ID)
}
