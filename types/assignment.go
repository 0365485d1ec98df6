package types

// Assignment pairs one giver with the secret child they give to.
type Assignment struct {
	GiverName     string `json:"giver_name"`
	GiverEmail    string `json:"giver_email"`
	ReceiverName  string `json:"receiver_name"`
	ReceiverEmail string `json:"receiver_email"`
}

// NewAssignment builds the assignment giver → receiver.
func NewAssignment(giver, receiver Participant) Assignment {
	return Assignment{
		GiverName:     giver.Name,
		GiverEmail:    giver.Email,
		ReceiverName:  receiver.Name,
		ReceiverEmail: receiver.Email,
	}
}

// Giver returns the giving participant.
func (a Assignment) Giver() Participant {
	return Participant{Name: a.GiverName, Email: a.GiverEmail}
}

// Receiver returns the receiving participant.
func (a Assignment) Receiver() Participant {
	return Participant{Name: a.ReceiverName, Email: a.ReceiverEmail}
}

// ForbiddenPair returns the pair that forbids repeating this assignment next period.
func (a Assignment) ForbiddenPair() ForbiddenPair {
	return ForbiddenPair{
		GiverName:    a.GiverName,
		GiverEmail:   a.GiverEmail,
		ReceiverName: a.ReceiverName,
	}
}

// ForbiddenPairs converts a completed period into the forbidden pairs for the next one.
func ForbiddenPairs(assignments []Assignment) []ForbiddenPair {
	pairs := make([]ForbiddenPair, 0, len(assignments))
	for _, a := range assignments {
		pairs = append(pairs, a.ForbiddenPair())
	}

	return pairs
}
