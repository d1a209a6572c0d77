package main

import (
	"context"
	"fmt"

	"github.com/poiesic/policymatch"
	"github.com/poiesic/policymatch/core"
	"github.com/urfave/cli/v2"
)

// withProfileFlags prepends flags describing a user profile.
func withProfileFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "User ID; its stored profile is used unless profile flags are given",
		},
		&cli.IntFlag{
			Name:  "age",
			Usage: "Age in years",
		},
		&cli.StringFlag{
			Name:  "housing",
			Usage: "Housing status, e.g. 자립준비청년",
		},
		&cli.StringFlag{
			Name:  "income",
			Usage: "Monthly income, e.g. 무소득 or 월 120만원",
		},
		&cli.StringSliceFlag{
			Name:  "need",
			Usage: "Support need (housing, income, employment, education, psychological); repeatable",
		},
	}
	return append(flags, extra...)
}

// hasProfileFlags reports whether any inline profile flag was given.
func hasProfileFlags(c *cli.Context) bool {
	return c.IsSet("age") || c.IsSet("housing") || c.IsSet("income") || c.IsSet("need")
}

// profileFromFlags builds a profile from inline flags and validates it.
func profileFromFlags(c *cli.Context) (*core.UserProfile, error) {
	profile := &core.UserProfile{
		UserID:        c.String("user"),
		Age:           c.Int("age"),
		HousingStatus: c.String("housing"),
		IncomeLevel:   c.String("income"),
	}
	for _, raw := range c.StringSlice("need") {
		need, ok := core.ParseSupportNeed(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %q", core.ErrInvalidSupportNeed, raw)
		}
		profile.SupportNeeds = append(profile.SupportNeeds, need)
	}
	if err := core.ValidateUserProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// resolveProfile returns the inline profile when profile flags were given,
// otherwise the stored profile of --user, otherwise nil.
func resolveProfile(ctx context.Context, c *cli.Context, svc *policymatch.Service) (*core.UserProfile, error) {
	if hasProfileFlags(c) {
		return profileFromFlags(c)
	}
	return svc.LoadProfile(ctx, c.String("user"))
}

func profileSetCommand(c *cli.Context) error {
	if c.String("user") == "" {
		return fmt.Errorf("user is required")
	}

	profile, err := profileFromFlags(c)
	if err != nil {
		return err
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.SaveProfile(c.Context, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Saved profile for %s\n", profile.UserID)
	return nil
}

func profileShowCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	profile, err := svc.LoadProfile(c.Context, c.String("user"))
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("no profile stored for %s", c.String("user"))
	}

	return writeJSON(c.App.Writer, profile)
}
