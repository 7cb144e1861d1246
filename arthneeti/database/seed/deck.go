package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arthneeti/game-engine/arthneeti/database/models"
	"github.com/arthneeti/game-engine/arthneeti/database/repositories"
)

// Deck seeds the starter scenario deck. BulkCreate skips titles that
// already exist, so seeding is idempotent.
func Deck(ctx context.Context, cards repositories.CardRepository, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	created, err := cards.BulkCreate(ctx, StarterDeck())
	if err != nil {
		return fmt.Errorf("failed to seed deck: %w", err)
	}
	log.Info("Starter deck seeded",
		slog.String("type", "db"),
		slog.Int("created", created))
	return nil
}

// StarterDeck is the hand-written deck every fresh deployment starts
// with. Difficulty and MinMonth spread the cards across the whole run.
func StarterDeck() []*models.ScenarioCard {
	return []*models.ScenarioCard{
		{
			Title:       "Monsoon Leak",
			Description: "The first heavy rain finds a leak right above your bed. The landlord shrugs; the plumber quotes ₹2,500.",
			Category:    models.CategoryNeeds, Difficulty: 1, MinMonth: 1, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Pay the plumber", WealthImpact: -2500, HappinessImpact: 3, LiteracyImpact: 1,
					Feedback: "Dry bed, small dent. Some expenses are just the cost of living.", IsRecommended: true},
				{Text: "Bucket and a tarp for now", WealthImpact: -300, HappinessImpact: -6,
					Feedback: "The drip keeps you up at night, and the stain is spreading."},
			},
		},
		{
			Title:       "Festival Sale Flash Deal",
			Description: "A 55-inch TV at 40% off, tonight only. Your current TV works fine.",
			Category:    models.CategoryWants, Difficulty: 1, MinMonth: 1, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Grab it before the timer runs out", WealthImpact: -28000, HappinessImpact: 10,
					Feedback: "Gorgeous screen. The credit card statement is less gorgeous."},
				{Text: "A deal on something you don't need is not a deal", HappinessImpact: -2, LiteracyImpact: 3,
					Feedback: "The sale returns next month, as sales do.", IsRecommended: true},
			},
		},
		{
			Title:       "Phone Screen Shattered",
			Description: "Your phone slipped on the platform stairs. The screen is a spiderweb and it barely responds to touch.",
			Category:    models.CategoryEmergency, Difficulty: 1, MinMonth: 1, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Repair the screen (₹4,000)", WealthImpact: -4000, HappinessImpact: 2,
					Feedback: "Fixed in an hour. Not every emergency needs an upgrade.", IsRecommended: true},
				{Text: "Upgrade to the new model on EMI", WealthImpact: -8000, HappinessImpact: 8, CreditImpact: -10,
					AddExpenseName: "Phone EMI", AddExpenseAmount: 2000,
					Feedback: "Shiny. The EMI will outlive the excitement."},
			},
		},
		{
			Title:       "College Friends Goa Plan",
			Description: "The old group chat lights up: Goa, three days, ₹9,000 each. Everyone's in. Are you?",
			Category:    models.CategorySocial, Difficulty: 2, MinMonth: 1, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Go, memories are worth it", WealthImpact: -9000, HappinessImpact: 15,
					Feedback: "Three days of sunburn and laughter. Zero regrets, some rupees."},
				{Text: "Suggest a cheaper weekend nearby", WealthImpact: -3000, HappinessImpact: 8, LiteracyImpact: 2,
					Feedback: "Half the group joins. Good company doesn't need a flight.", IsRecommended: true},
				{Text: "Sit this one out", HappinessImpact: -8,
					Feedback: "The photos keep coming all weekend. Saving has a price too."},
			},
		},
		{
			Title:       "Office Canteen Subscription",
			Description: "The canteen offers a monthly meal plan at ₹1,800, cheaper per meal than your daily Swiggy habit.",
			Category:    models.CategoryNeeds, Difficulty: 2, MinMonth: 2, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Subscribe and cancel the delivery habit", WealthImpact: -1800, HappinessImpact: 1, LiteracyImpact: 2,
					AddExpenseName: "Canteen Plan", AddExpenseAmount: 1800,
					Feedback: "Predictable food, predictable spend. Boring wins.", IsRecommended: true},
				{Text: "Keep ordering in", WealthImpact: -3500, HappinessImpact: 4,
					Feedback: "Variety is tasty and roughly twice the price."},
			},
		},
		{
			Title:       "Gym Membership Renewal",
			Description: "Your gym membership lapsed and you went four times last quarter. The annual plan is ₹1,200 a month.",
			Category:    models.CategoryWants, Difficulty: 2, MinMonth: 2, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Renew, this year will be different", AddExpenseName: "Gym Membership", AddExpenseAmount: 1200,
					HappinessImpact: 3, Feedback: "Month one attendance: strong. Let's see month three."},
				{Text: "Cancel and run outdoors", HappinessImpact: 1, LiteracyImpact: 2,
					CancelExpenseName: "Gym Membership",
					Feedback: "The park is free and open earlier than the gym.", IsRecommended: true},
			},
		},
		{
			Title:       "Colleague's Hot Stock Tip",
			Description: "A colleague whispers that tech stocks are about to run. He's been right once before, loudly.",
			Category:    models.CategoryInvestment, Difficulty: 3, MinMonth: 4, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Put in a measured amount you can lose", WealthImpact: -5000, LiteracyImpact: 3,
					Feedback: "Position sized to survive being wrong. That's the skill.", IsRecommended: true},
				{Text: "Go big, conviction pays", WealthImpact: -20000, HappinessImpact: 2,
					Feedback: "Bold. Concentrated bets cut both ways."},
				{Text: "Tips are not research, pass", LiteracyImpact: 4,
					Feedback: "If it's truly public knowledge, it's already in the price."},
			},
		},
		{
			Title:       "SIP or Shopping",
			Description: "A ₹3,000 bonus landed. A systematic investment plan form sits open in one tab, a cart in another.",
			Category:    models.CategoryInvestment, Difficulty: 3, MinMonth: 4, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Start the SIP", WealthImpact: -3000, LiteracyImpact: 4,
					Feedback: "Automatic investing removes the hardest part: remembering to.", IsRecommended: true},
				{Text: "Checkout the cart", WealthImpact: -3000, HappinessImpact: 7,
					Feedback: "The parcel arrives Thursday. The compounding never starts."},
			},
		},
		{
			Title:       "RBI Raises Rates",
			Description: "Breaking: the central bank hikes rates sharply. Markets open jittery; real estate and tech wobble.",
			Category:    models.CategoryNews, Difficulty: 3, MinMonth: 4, IsActive: true,
			NewsSectors: []string{"tech", "real_estate"}, NewsMultiplier: 0.92,
			Choices: []*models.Choice{
				{Text: "Hold through the noise", LiteracyImpact: 3,
					Feedback: "Rate cycles pass. Panic-selling locks in the dip.", IsRecommended: true},
				{Text: "Sell everything, safety first", HappinessImpact: -3,
					Feedback: "Cash feels safe today and lazy next year."},
			},
		},
		{
			Title:       "Gold Import Duty Cut",
			Description: "The budget slashes gold import duty. Jewellers cheer; the metal jumps in early trade.",
			Category:    models.CategoryNews, Difficulty: 3, MinMonth: 4, IsActive: true,
			NewsSectors: []string{"gold"}, NewsMultiplier: 1.08,
			Choices: []*models.Choice{
				{Text: "Note it and move on", LiteracyImpact: 2,
					Feedback: "News you didn't act on is still news you understood.", IsRecommended: true},
				{Text: "Chase the rally", WealthImpact: -10000,
					Feedback: "Buying after the jump means paying for yesterday's news."},
			},
		},
		{
			Title:       "Guaranteed Doubling Scheme",
			Description: "A WhatsApp forward from a relative: an 'RBI-approved' plan that doubles money in 90 days. Many uncles have 'already joined'.",
			Category:    models.CategoryTrap, Difficulty: 4, MinMonth: 7, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Invest ₹15,000, family vouched for it", WealthImpact: -15000, HappinessImpact: -5,
					Feedback: "The group goes quiet in week six. The admin's number is switched off."},
				{Text: "Report and warn the family group", LiteracyImpact: 5, HappinessImpact: 2,
					Feedback: "Nothing legitimate doubles in 90 days. You just saved an uncle.", IsRecommended: true},
			},
		},
		{
			Title:       "Credit Card Minimum Due",
			Description: "The statement offers a tempting button: pay just ₹800 of the ₹16,000 due.",
			Category:    models.CategoryTrap, Difficulty: 4, MinMonth: 7, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Pay the full amount", WealthImpact: -16000, CreditImpact: 10, LiteracyImpact: 3,
					Feedback: "Interest-free credit stays interest-free only when cleared.", IsRecommended: true},
				{Text: "Pay minimum, breathe this month", WealthImpact: -800, CreditImpact: -25, HappinessImpact: 2,
					Feedback: "The remaining balance now compounds at 42% a year."},
			},
		},
		{
			Title:       "Quiz: The Inflation Question",
			Description: "Quick check: if prices rise 5% a year, what happens to cash under your mattress?",
			Category:    models.CategoryQuiz, Difficulty: 4, MinMonth: 7, IsActive: true,
			Choices: []*models.Choice{
				{Text: "It quietly loses buying power every year", LiteracyImpact: 5, HappinessImpact: 1,
					Feedback: "Right. Idle cash is a slow leak, which is why savings need a return.", IsRecommended: true},
				{Text: "Nothing, a rupee is a rupee", LiteracyImpact: -1,
					Feedback: "The note survives; what it buys shrinks."},
			},
		},
		{
			Title:       "Parents' Insurance Review",
			Description: "Your parents' health cover renews this week. Upgrading the plan costs ₹12,000 more a year; their hospital visits are getting frequent.",
			Category:    models.CategoryNeeds, Difficulty: 5, MinMonth: 10, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Upgrade the cover", WealthImpact: -12000, HappinessImpact: 5, LiteracyImpact: 3,
					Feedback: "One hospital bill can undo a decade of savings. This is the hedge.", IsRecommended: true},
				{Text: "Renew the basic plan", HappinessImpact: -2,
					Feedback: "Cheaper today. You check the coverage limits twice before sleeping."},
			},
		},
		{
			Title:       "Startup Offer With a Pay Cut",
			Description: "A friend's funded startup offers you a role: 20% below your salary now, meaningful equity, real upside, real risk.",
			Category:    models.CategoryWants, Difficulty: 5, MinMonth: 10, IsActive: true,
			Choices: []*models.Choice{
				{Text: "Take the leap", WealthImpact: -5000, HappinessImpact: 10, LiteracyImpact: 2,
					Feedback: "Equity is a lottery ticket you help print. Eyes open."},
				{Text: "Stay, negotiate a raise instead", WealthImpact: 3000, HappinessImpact: 2, LiteracyImpact: 2,
					Feedback: "The safe path also moves, just slower.", IsRecommended: true},
			},
		},
	}
}
