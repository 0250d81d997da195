package component

// Health is a pool in [0, Max]. It only changes through DamageSystem.
type Health struct {
	Max     float64
	Current float64
}

var HealthComponent = NewComponent[Health]()

// Fraction is Current/Max, or 0 when Max is not positive.
func (h Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

func (h Health) Dead() bool {
	return h.Current <= 0
}

// Apply subtracts amount, floors the pool at zero and returns what was
// actually removed.
func (h *Health) Apply(amount float64) float64 {
	if h == nil || amount <= 0 || h.Current <= 0 {
		return 0
	}
	if amount > h.Current {
		amount = h.Current
	}
	h.Current -= amount
	return amount
}
