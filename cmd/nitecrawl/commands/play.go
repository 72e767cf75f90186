package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/nitecrawlers/internal/engine"
	"github.com/jwebster45206/nitecrawlers/pkg/consequence"
	"github.com/jwebster45206/nitecrawlers/pkg/item"
	"github.com/jwebster45206/nitecrawlers/pkg/profile"
)

type statusView struct {
	Profile    profile.PlayerProfile `json:"profile"`
	Statistics profile.Statistics    `json:"statistics"`
}

func printStatus(w io.Writer, p profile.PlayerProfile, s profile.Statistics) {
	fmt.Fprintf(w, "Money:      $%d\n", p.Money)
	fmt.Fprintf(w, "Literacy:   %d/%d\n", p.Literacy, profile.MaxLiteracy)
	fmt.Fprintf(w, "Growth:     %d/%d\n", p.GrowthStage, profile.MaxGrowth)
	fmt.Fprintf(w, "Day:        %d\n", p.Day)
	fmt.Fprintf(w, "Allowance:  $%d %s\n", p.AllowanceAmount, p.AllowanceFrequency)
	fmt.Fprintf(w, "Onboarded:  %t\n", p.Onboarded)
	fmt.Fprintf(w, "Bought %d ($%d), skipped %d ($%d), later %d\n",
		s.WantsBought, s.TotalSpent, s.Skipped, s.TotalSaved, s.SavedForLater)
}

func statusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show money, literacy, growth and day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, s := a.controller.Profile(), a.controller.Stats()
			return a.print(cmd.OutOrStdout(), statusView{p, s}, func(w io.Writer) {
				printStatus(w, p, s)
			})
		},
	}
}

func parseAmount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return 0, fmt.Errorf("allowance must be a whole number: %q", s)
	}
	return n, nil
}

type allowanceFunc func(c *engine.Controller, ctx context.Context, amount int, freq profile.Frequency) (profile.PlayerProfile, error)

func allowanceRunE(a *app, freq *string, apply allowanceFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		p, err := apply(a.controller, cmd.Context(), amount, profile.Frequency(*freq))
		if err != nil && !errors.Is(err, engine.ErrNotPersisted) {
			return err
		}
		s := a.controller.Stats()
		if perr := a.print(cmd.OutOrStdout(), statusView{p, s}, func(w io.Writer) {
			printStatus(w, p, s)
		}); perr != nil {
			return perr
		}
		return err
	}
}

func onboardCmd(a *app) *cobra.Command {
	var freq string
	cmd := &cobra.Command{
		Use:   "onboard <allowance>",
		Short: "Set up the player with an allowance",
		Args:  cobra.ExactArgs(1),
		RunE:  allowanceRunE(a, &freq, (*engine.Controller).Onboard),
	}
	cmd.Flags().StringVarP(&freq, "frequency", "f", string(profile.FrequencyWeekly), "weekly or monthly")
	return cmd
}

func allowanceCmd(a *app) *cobra.Command {
	var freq string
	cmd := &cobra.Command{
		Use:   "allowance <amount>",
		Short: "Change the allowance and refill the wallet",
		Args:  cobra.ExactArgs(1),
		RunE:  allowanceRunE(a, &freq, (*engine.Controller).UpdateAllowance),
	}
	cmd.Flags().StringVarP(&freq, "frequency", "f", string(profile.FrequencyWeekly), "weekly or monthly")
	return cmd
}

func printResult(w io.Writer, res *engine.Result) {
	fmt.Fprintln(w, res.Message)
	if res.SavingsPrediction > 0 {
		fmt.Fprintf(w, "Skip it every week and you keep $%d a month.\n", res.SavingsPrediction)
	}
	if res.SimilarMatch != "" && res.SimilarMatch != res.ItemName {
		fmt.Fprintf(w, "Looks a lot like your %s.\n", res.SimilarMatch)
	}
	fmt.Fprintf(w, "Tip: %s\n", res.Tip)
	fmt.Fprintf(w, "Money $%d, literacy %d, growth %d, day %d\n", res.Money, res.Literacy, res.GrowthStage, res.Day)
	if !res.Persisted {
		fmt.Fprintln(w, "Warning: progress could not be saved.")
	}
}

func (a *app) decide(cmd *cobra.Command, actionStr string, it *item.ScannedItem) error {
	action, err := consequence.ParseAction(actionStr)
	if err != nil {
		return err
	}
	res, err := a.controller.Decide(cmd.Context(), action, it)
	if err != nil {
		return err
	}
	return a.print(cmd.OutOrStdout(), res, func(w io.Writer) { printResult(w, res) })
}

func decideCmd(a *app) *cobra.Command {
	var (
		price    int
		category string
	)
	cmd := &cobra.Command{
		Use:   "decide <buy|later|skip> [item name]",
		Short: "Make a decision about an item",
		Long: "Make a decision about an item. Without --price the name is looked up in the\n" +
			"catalog, falling back to an estimated price. Without a name the item is a free \"Thing\".",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var it *item.ScannedItem
			if len(args) == 2 {
				name := strings.TrimSpace(args[1])
				if cmd.Flags().Changed("price") {
					it = &item.ScannedItem{Name: name, Price: price, Category: category}
				} else {
					var err error
					if it, err = a.catalog.Recognize(cmd.Context(), name); err != nil {
						return err
					}
				}
			}
			return a.decide(cmd, args[0], it)
		},
	}
	cmd.Flags().IntVar(&price, "price", 0, "item price in dollars")
	cmd.Flags().StringVar(&category, "category", "", "item category")
	return cmd
}

func scanCmd(a *app) *cobra.Command {
	var action string
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Spot a random item from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.catalog.Random(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
			if err != nil {
				return err
			}
			if action != "" {
				return a.decide(cmd, action, it)
			}
			return a.print(cmd.OutOrStdout(), it, func(w io.Writer) {
				fmt.Fprintf(w, "You spotted %s for $%d (%s).\n", it.Name, it.Price, it.Category)
				if fi := it.FinancialInfo; fi != nil {
					fmt.Fprintf(w, "%s: %s %s\n", fi.Term, fi.SimpleDefinition, fi.KidExplanation)
				}
			})
		},
	}
	cmd.Flags().StringVar(&action, "decide", "", "decide right away: buy, later or skip")
	return cmd
}

func resetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset erases everything; pass --yes to confirm")
			}
			p, err := a.controller.Reset(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), statusView{p, a.controller.Stats()}, func(w io.Writer) {
				fmt.Fprintln(w, "Progress erased.")
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
