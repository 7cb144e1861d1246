package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
)

const trajectoryWorkers = 4

// evolvePrice applies a log return and floors the result at 1.
func evolvePrice(price int64, ret, maxDrop float64) int64 {
	if ret < -maxDrop {
		ret = -maxDrop
	}
	next := int64(math.Round(float64(price) * math.Exp(ret)))
	if next < 1 {
		next = 1
	}
	return next
}

// generateTrajectory pre-computes the whole horizon of prices for every
// sector. Sectors evolve independently, so each gets its own goroutine
// and its own deterministic sub-seeded source.
func generateTrajectory(seed int64, months int) map[string][]int64 {
	out := make(map[string][]int64, len(Sectors))
	var names []string
	for name := range Sectors {
		names = append(names, name)
	}
	sort.Strings(names)

	g, ctx := errgroup.WithContext(context.Background())
	sem := semaphore.NewWeighted(trajectoryWorkers)
	results := make([][]int64, len(names))

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			params := Sectors[name]
			rng := rand.New(rand.NewSource(seed + int64(i)*7919))
			prices := make([]int64, months)
			price := params.BasePrice
			prices[0] = price
			for m := 1; m < months; m++ {
				ret := params.Drift + params.Vol*rng.NormFloat64()
				price = evolvePrice(price, ret, 0.25)
				prices[m] = price
			}
			results[i] = prices
			return nil
		})
	}

	// Generation cannot fail outside of context cancellation, which the
	// background context never signals.
	_ = g.Wait()

	for i, name := range names {
		out[name] = results[i]
	}
	return out
}

// revealMonth switches the session's prices to the pre-generated values
// for its current month and reports significant moves.
func (s *Service) revealMonth(ctx context.Context, sess *models.GameSession) ([]string, error) {
	prices, err := s.market.PricesAt(ctx, sess.ID, sess.CurrentMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to load trajectory prices: %w", err)
	}
	if len(prices) == 0 {
		// Trajectory exhausted or absent; evolve in place instead.
		return s.liveTick(sess), nil
	}

	var lines []string
	for sector, price := range prices {
		old := sess.Price(sector)
		sess.SetPrice(sector, price)
		if old > 0 {
			pct := (float64(price) - float64(old)) / float64(old) * 100
			if math.Abs(pct) > s.cfg.SignificantMovePct {
				lines = append(lines, moveLine(sector, pct))
			}
		}
	}
	sort.Strings(lines)
	return lines, nil
}

// liveTick evolves each sector from its persisted momentum:
// price *= 1 + noise + momentum/100, noise uniform in [-2%,+2%].
// Momentum mean-reverts by one unit per month and is occasionally reset
// by a simulated news shock.
func (s *Service) liveTick(sess *models.GameSession) []string {
	var lines []string
	var names []string
	for name := range Sectors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, sector := range names {
		old := sess.Price(sector)
		if old < 1 {
			old = Sectors[sector].BasePrice
		}
		momentum := sess.Trend(sector)

		noise := (s.rng.Float64() - 0.5) * 0.04
		next := int64(float64(old) * (1 + noise + float64(momentum)/100))
		sess.SetPrice(sector, next)

		if momentum > 0 {
			momentum--
		} else if momentum < 0 {
			momentum++
		}
		if s.rng.Float64() < s.cfg.MomentumResetChance {
			momentum = s.rng.Intn(9) - 4
		}
		sess.SetTrend(sector, momentum)

		pct := (float64(sess.Price(sector)) - float64(old)) / float64(old) * 100
		if math.Abs(pct) > s.cfg.SignificantMovePct {
			lines = append(lines, moveLine(sector, pct))
		}
	}
	return lines
}

// fundTick walks every fund NAV: nav *= 1 + gauss(0.8%, vol), floored
// at 1. Large single-month drops are reported.
func (s *Service) fundTick(sess *models.GameSession) []string {
	var lines []string
	var codes []string
	for code := range MutualFunds {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	if sess.FundNAVs == nil {
		sess.FundNAVs = make(map[string]float64)
	}
	for _, code := range codes {
		fund := MutualFunds[code]
		nav := sess.FundNAVs[code]
		if nav <= 0 {
			nav = fund.StartNAV
		}
		next := nav * (1 + 0.008 + fund.Volatility*s.rng.NormFloat64())
		if next < 1 {
			next = 1
		}
		sess.FundNAVs[code] = next

		pct := (next - nav) / nav * 100
		if pct < -5 {
			lines = append(lines, fmt.Sprintf("%s NAV slid %.1f%% this month.", fund.Name, -pct))
		}
	}
	return lines
}

// applyNewsShock applies an immediate multiplicative jump to the listed
// sectors and biases momentum toward the shock's direction.
func (s *Service) applyNewsShock(sess *models.GameSession, sectors []string, multiplier float64) []string {
	var lines []string
	for _, sector := range sectors {
		if !validSector(sector) {
			continue
		}
		old := sess.Price(sector)
		sess.SetPrice(sector, int64(float64(old)*multiplier))
		if multiplier >= 1 {
			sess.SetTrend(sector, 3)
		} else {
			sess.SetTrend(sector, -3)
		}
		pct := (multiplier - 1) * 100
		name := sectorDisplay(sector)
		if pct >= 0 {
			lines = append(lines, fmt.Sprintf("%s surged %.0f%%!", name, pct))
		} else {
			lines = append(lines, fmt.Sprintf("%s crashed %.0f%%!", name, -pct))
		}
	}
	return lines
}

// futuresQuote is the locked-in forward price for disposing units now:
// spot adjusted by sector drift over the duration, less cost of carry,
// floored at half of spot.
func futuresQuote(spot int64, sector string, durationMonths int) int64 {
	params := Sectors[sector]
	quote := float64(spot) * (1 + (params.Drift-0.02)*float64(durationMonths))
	if quote < float64(spot)*0.5 {
		quote = float64(spot) * 0.5
	}
	return int64(quote)
}

func moveLine(sector string, pct float64) string {
	name := sectorDisplay(sector)
	if pct >= 0 {
		return fmt.Sprintf("%s surged %.0f%%!", name, pct)
	}
	return fmt.Sprintf("%s tanked %.0f%%!", name, -pct)
}

// sectorDisplay renders a sector key as a headline name, "real_estate"
// becoming "Real Estate".
func sectorDisplay(sector string) string {
	words := strings.Fields(strings.ReplaceAll(sector, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
