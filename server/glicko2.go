package main

import "math"

// Glicko-2 constants (paper values).
const (
	g2Scale = 173.7178          // rating scale between r<->mu
	q       = math.Ln10 / 400.0 // q = ln(10)/400
	pi2     = math.Pi * math.Pi
)

// Glicko2 holds the public 1500-scale values (not mu/phi).
type Glicko2 struct {
	Rating     float64 // r   (default 1500)
	RD         float64 // RD  (default 350)
	Volatility float64 // sigma (default 0.06)
	Games      int     // rating-period updates applied
}

// NewGlicko2 returns a fresh rating at the standard defaults.
func NewGlicko2() *Glicko2 {
	return &Glicko2{Rating: 1500, RD: 350, Volatility: 0.06}
}

// NewGlicko2With seeds specific starting values (career ratings from the store).
func NewGlicko2With(r, rd, sigma float64) *Glicko2 {
	return &Glicko2{Rating: r, RD: rd, Volatility: sigma}
}

// Copy makes a snapshot; both sides of a pair update against the other's
// start-of-period values.
func (g *Glicko2) Copy() *Glicko2 {
	cp := *g
	return &cp
}

// --- internal conversions r/RD <-> mu/phi ---
func toMuPhi(r, rd float64) (mu, phi float64)   { return (r - 1500.0) / g2Scale, rd / g2Scale }
func fromMuPhi(mu, phi float64) (r, rd float64) { return mu*g2Scale + 1500.0, phi * g2Scale }

// g(phi_j) and E(mu, mu_j, phi_j)
func g(phi float64) float64 { return 1.0 / math.Sqrt(1.0+3.0*q*q*phi*phi/pi2) }
func gExp(mu, muj, phij float64) float64 {
	return 1.0 / (1.0 + math.Exp(-g(phij)*(mu-muj)))
}

// Age applies the no-games-this-period step: RD grows by the volatility,
// the rating stays put.
func (a *Glicko2) Age() {
	muA, phiA := toMuPhi(a.Rating, a.RD)
	phiStar := math.Sqrt(phiA*phiA + a.Volatility*a.Volatility)
	a.Rating, a.RD = fromMuPhi(muA, phiStar)
	a.Games++
}

// Update applies one rating period of games against a single opponent.
// scores holds the per-game S in [0,1] from a's side; opp must carry the
// opponent's values as they were at the START of the period. tau ~0.5.
func (a *Glicko2) Update(opp *Glicko2, scores []float64, tau float64) {
	if len(scores) == 0 {
		a.Age()
		return
	}

	muA, phiA := toMuPhi(a.Rating, a.RD)
	muB, phiB := toMuPhi(opp.Rating, opp.RD)
	gB := g(phiB)
	Eab := gExp(muA, muB, phiB)

	// Sum terms per the Glicko-2 paper; one opponent, many games.
	sumG2E := float64(len(scores)) * (gB * gB) * Eab * (1.0 - Eab)
	var sumGSE float64
	for _, s := range scores {
		sumGSE += gB * (s - Eab)
	}
	v := 1.0 / (q * q * sumG2E)
	delta := v * q * sumGSE

	// Effectively zero delta: skip volatility root-finding but still shrink RD.
	if math.Abs(delta) < 1e-12 {
		phiStar := math.Sqrt(phiA*phiA + a.Volatility*a.Volatility)
		phiNew := 1.0 / math.Sqrt(1.0/(phiStar*phiStar)+1.0/v)
		muNew := muA + (phiNew*phiNew)*q*sumGSE
		a.Rating, a.RD = fromMuPhi(muNew, phiNew)
		a.Games++
		return
	}

	// Solve for the new volatility via the f(x)=0 root finder.
	a2 := math.Log(a.Volatility * a.Volatility)
	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (delta*delta - phiA*phiA - v - ex)
		den := 2.0 * (phiA*phiA + v + ex) * (phiA*phiA + v + ex)
		return (num / den) - (x-a2)/(tau*tau)
	}

	A := a2
	var B float64
	if delta*delta > phiA*phiA+v {
		B = math.Log(delta*delta - phiA*phiA - v)
	} else {
		k := 1.0
		for f(a2-k) < 0 && k < 1e6 {
			k *= 2.0
		}
		B = a2 - k
	}
	fA := f(A)
	fB := f(B)

	// Illinois/secant-style iteration with guards.
	for it := 0; it < 60 && math.Abs(B-A) > 1e-6; it++ {
		C := A + (A-B)*fA/(fB-fA)
		fC := f(C)
		if math.IsNaN(fC) || math.IsInf(fC, 0) {
			break
		}
		if fC*fB < 0 {
			A = B
			fA = fB
		}
		B = C
		fB = fC
	}

	newVol := math.Exp(B / 2.0)
	phiStar := math.Sqrt(phiA*phiA + newVol*newVol)
	phiNew := 1.0 / math.Sqrt(1.0/(phiStar*phiStar)+1.0/v)
	muNew := muA + (phiNew*phiNew)*q*sumGSE

	a.Rating, a.RD = fromMuPhi(muNew, phiNew)
	a.Volatility = newVol
	a.Games++
}

// UpdatePair is the single-game convenience form.
func (a *Glicko2) UpdatePair(b *Glicko2, S float64, tau float64) {
	a.Update(b, []float64{S}, tau)
}

// --- score mappings into S in [0,1] ---

// ScoreFromWL returns S for pure outcomes: win=1, push=0.5, loss=0.
func ScoreFromWL(win bool, push bool) float64 {
	if push {
		return 0.5
	}
	if win {
		return 1.0
	}
	return 0.0
}

// ScoreFromMargin maps a normalized margin m=(chipsWon/effStack) to S via a
// tanh curve; k controls steepness. If effStack<=0 it returns 0.5.
func ScoreFromMargin(chipsWon int, effStack, k float64) float64 {
	if effStack <= 0 {
		return 0.5
	}
	m := float64(chipsWon) / effStack
	return 0.5 + 0.5*math.Tanh(k*m)
}
