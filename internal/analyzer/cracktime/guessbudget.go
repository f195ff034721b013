package cracktime

import "math"

// commonDBGuesses assumes a breached password falls within the first 1000
// attempts of a dictionary attack.
const commonDBGuesses = 1000

// Attacker models for the guess-budget strategy, ordered slowest first.
const (
	OnlineThrottled   = "online_throttled"
	OnlineUnthrottled = "online_unthrottled"
	OfflineSlowHash   = "offline_slow_hash"
	OfflineFastHash   = "offline_fast_hash"
	OfflineGPUFarm    = "offline_gpu_farm"
	QuantumComputer   = "quantum_computer"
)

// guessRates maps each attacker model to its throughput in guesses/second.
var guessRates = []struct {
	model string
	rate  float64
}{
	{OnlineThrottled, 100},
	{OnlineUnthrottled, 1e4},
	{OfflineSlowHash, 1e6},  // bcrypt/PBKDF2 class
	{OfflineFastHash, 1e9},  // MD5/SHA class
	{OfflineGPUFarm, 1e11},  // large GPU farm
	{QuantumComputer, 1e13}, // speculative future hardware
}

// GuessBudgetEstimate reports per-attacker-model crack times. Human carries
// the offline-fast-hash row as the representative summary.
type GuessBudgetEstimate struct {
	Human       string            `json:"human"`
	AttackTimes map[string]string `json:"attack_times"`
}

// GuessBudget estimates crack times from the entropy-derived guess budget:
// 2^entropy guesses, or a flat 1000 when the password is a known breach
// corpus member.
func GuessBudget(entropyBits float64, inCommonDB bool) GuessBudgetEstimate {
	guesses := math.Exp2(entropyBits)
	if inCommonDB {
		guesses = commonDBGuesses
	}

	times := make(map[string]string, len(guessRates))
	for _, r := range guessRates {
		times[r.model] = FormatDuration(guesses / r.rate)
	}

	return GuessBudgetEstimate{
		Human:       times[OfflineFastHash],
		AttackTimes: times,
	}
}
