package settlement

import (
	"github.com/google/uuid"
	"github.com/nssports/sportsbook/app/odds"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
)

// Outcome is the graded result of one leg.
type Outcome int

const (
	OutcomeWon Outcome = iota
	OutcomeLost
	OutcomePush
	// OutcomeDeferred means the leg has no determinable result yet. The
	// whole bet stays pending and is retried on a later sweep.
	OutcomeDeferred
)

// GradeResult is the terminal decision for a bet. Payout is the full credit
// amount (stake included) when the bet won, zero otherwise. A deferred result
// carries no status.
type GradeResult struct {
	Status   models.BetStatus
	Payout   decimal.Decimal
	Deferred bool
}

// Grader resolves bets against final game results. It is pure; persistence
// and the ledger effect live in the service.
type Grader struct{}

// NewGrader creates a new bet grader
func NewGrader() *Grader {
	return &Grader{}
}

// Grade derives the terminal status and payout for a bet from the games its
// legs reference. Any leg without an authoritative final result defers the
// whole bet.
func (g *Grader) Grade(bet *models.Bet, games map[uuid.UUID]*models.Game) (*GradeResult, error) {
	switch bet.BetType {
	case models.BetTypeSingle:
		return g.gradeSingle(bet, games)
	case models.BetTypeParlay:
		return g.gradeParlay(bet, games)
	case models.BetTypeTeaser:
		return g.gradeTeaser(bet, games)
	default:
		return nil, models.ErrInvalidBetType
	}
}

func (g *Grader) gradeSingle(bet *models.Bet, games map[uuid.UUID]*models.Game) (*GradeResult, error) {
	outcome := gradeLeg(bet.Legs[0], games[bet.Legs[0].GameID], decimal.Zero)
	switch outcome {
	case OutcomeDeferred:
		return &GradeResult{Deferred: true}, nil
	case OutcomeWon:
		return &GradeResult{Status: models.BetStatusWon, Payout: bet.PotentialPayout}, nil
	case OutcomePush:
		return &GradeResult{Status: models.BetStatusPush, Payout: decimal.Zero}, nil
	default:
		return &GradeResult{Status: models.BetStatusLost, Payout: decimal.Zero}, nil
	}
}

// gradeParlay applies the drop-the-pushed-leg rule: a pushed leg is removed
// and the remaining legs recombine as a smaller parlay at their bound odds.
func (g *Grader) gradeParlay(bet *models.Bet, games map[uuid.UUID]*models.Game) (*GradeResult, error) {
	outcomes, deferred := gradeLegs(bet.Legs, games, decimal.Zero)
	if deferred {
		return &GradeResult{Deferred: true}, nil
	}

	surviving := make(models.BetLegs, 0, len(bet.Legs))
	for i, leg := range bet.Legs {
		switch outcomes[i] {
		case OutcomeLost:
			return &GradeResult{Status: models.BetStatusLost, Payout: decimal.Zero}, nil
		case OutcomePush:
			// dropped
		case OutcomeWon:
			surviving = append(surviving, leg)
		}
	}

	if len(surviving) == 0 {
		return &GradeResult{Status: models.BetStatusPush, Payout: decimal.Zero}, nil
	}

	combined := decimal.NewFromInt(1)
	for _, leg := range surviving {
		d, err := odds.AmericanToDecimal(leg.Odds)
		if err != nil {
			return nil, err
		}
		combined = combined.Mul(d)
	}
	return &GradeResult{
		Status: models.BetStatusWon,
		Payout: bet.Stake.Mul(combined).Round(2),
	}, nil
}

func (g *Grader) gradeTeaser(bet *models.Bet, games map[uuid.UUID]*models.Game) (*GradeResult, error) {
	if bet.TeaserPushRule == nil {
		return nil, models.ErrInvalidPushRule
	}

	outcomes, deferred := gradeLegs(bet.Legs, games, bet.TeaserPoints)
	if deferred {
		return &GradeResult{Deferred: true}, nil
	}

	pushed := false
	for _, outcome := range outcomes {
		switch outcome {
		case OutcomeLost:
			return &GradeResult{Status: models.BetStatusLost, Payout: decimal.Zero}, nil
		case OutcomePush:
			pushed = true
		}
	}

	if pushed {
		switch *bet.TeaserPushRule {
		case models.TeaserPushRefunds:
			return &GradeResult{Status: models.BetStatusPush, Payout: decimal.Zero}, nil
		case models.TeaserPushLoses:
			return &GradeResult{Status: models.BetStatusLost, Payout: decimal.Zero}, nil
		default:
			return nil, models.ErrInvalidPushRule
		}
	}
	return &GradeResult{Status: models.BetStatusWon, Payout: bet.PotentialPayout}, nil
}

// gradeLegs grades every leg before any verdict is taken. An unresolved leg
// holds the whole bet open even when another leg has already lost, so a
// multi-leg bet never settles while one of its games is still live.
func gradeLegs(legs models.BetLegs, games map[uuid.UUID]*models.Game, shift decimal.Decimal) ([]Outcome, bool) {
	outcomes := make([]Outcome, len(legs))
	deferred := false
	for i, leg := range legs {
		outcomes[i] = gradeLeg(leg, games[leg.GameID], shift)
		if outcomes[i] == OutcomeDeferred {
			deferred = true
		}
	}
	return outcomes, deferred
}

// noTieSports are sports whose rules cannot end a game level. A tied final
// arriving for one of these is a feed anomaly, so the leg waits for a
// corrected result instead of pushing.
var noTieSports = map[string]struct{}{
	"basketball": {},
}

// gradeLeg evaluates one leg against a game's final score. shift is the
// teaser point adjustment, applied in the bettor's favor before evaluation;
// zero for singles and parlays.
func gradeLeg(leg models.BetLeg, game *models.Game, shift decimal.Decimal) Outcome {
	if game == nil || !game.HasFinalResult() {
		return OutcomeDeferred
	}
	home := int64(*game.HomeScore)
	away := int64(*game.AwayScore)

	switch leg.Market {
	case models.MarketMoneyline:
		diff := home - away
		if diff == 0 {
			if _, ok := noTieSports[game.Sport]; ok {
				return OutcomeDeferred
			}
		}
		if leg.Selection == models.SelectionAway {
			diff = -diff
		}
		return signOutcome(decimal.NewFromInt(diff))

	case models.MarketSpread:
		margin := home - away
		if leg.Selection == models.SelectionAway {
			margin = -margin
		}
		line := leg.Line.Add(shift)
		return signOutcome(decimal.NewFromInt(margin).Add(line))

	case models.MarketTotal:
		total := decimal.NewFromInt(home + away)
		line := leg.Line
		if leg.Selection == models.SelectionOver {
			line = line.Sub(shift)
			return signOutcome(total.Sub(line))
		}
		line = line.Add(shift)
		return signOutcome(line.Sub(total))

	default:
		// Prop outcomes never derive from the score feed; the bet waits
		// until a richer result source can resolve them.
		return OutcomeDeferred
	}
}

func signOutcome(d decimal.Decimal) Outcome {
	switch d.Sign() {
	case 1:
		return OutcomeWon
	case 0:
		return OutcomePush
	default:
		return OutcomeLost
	}
}
