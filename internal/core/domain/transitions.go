package domain

// Legal status transitions per entity. Each table maps a current status to the
// set of statuses reachable from it; a missing key means the status is terminal.

var requestTransitions = map[string][]string{
	RequestPending: {RequestFulfilled, RequestCancelled, RequestExpired},
}

var donationTransitions = map[string][]string{
	DonationPending:   {DonationScheduled, DonationCompleted, DonationCancelled},
	DonationScheduled: {DonationCompleted, DonationCancelled},
}

var appointmentTransitions = map[string][]string{
	AppointmentScheduled: {AppointmentConfirmed, AppointmentCancelled},
	AppointmentConfirmed: {AppointmentCompleted, AppointmentCancelled, AppointmentNoShow},
}

var participantTransitions = map[string][]string{
	ParticipantRegistered: {ParticipantConfirmed, ParticipantCancelled},
	ParticipantConfirmed:  {ParticipantCompleted, ParticipantCancelled},
}

func canTransition(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionRequest reports whether a blood request may move from -> to
func CanTransitionRequest(from, to string) bool {
	return canTransition(requestTransitions, from, to)
}

// CanTransitionDonation reports whether a donation may move from -> to
func CanTransitionDonation(from, to string) bool {
	return canTransition(donationTransitions, from, to)
}

// CanTransitionAppointment reports whether an appointment may move from -> to
func CanTransitionAppointment(from, to string) bool {
	return canTransition(appointmentTransitions, from, to)
}

// CanTransitionParticipant reports whether a campaign participant may move from -> to
func CanTransitionParticipant(from, to string) bool {
	return canTransition(participantTransitions, from, to)
}

// IsTerminalRequest reports whether a blood request status is immutable
func IsTerminalRequest(status string) bool {
	return status != RequestPending
}

// DeriveInventoryStatus recomputes the inventory status label from the two
// counters. It never returns EXPIRED; expiry is date-driven, not counter-driven.
func DeriveInventoryStatus(availableUnits, reservedUnits int) string {
	if availableUnits == 0 && reservedUnits == 0 {
		return InventoryUsed
	}
	if availableUnits == 0 {
		return InventoryReserved
	}
	return InventoryAvailable
}
