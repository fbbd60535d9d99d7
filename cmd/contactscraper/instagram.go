package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"contactscraper/pkg/auth"
	"contactscraper/pkg/instagram"
	"contactscraper/pkg/logger"
	"contactscraper/pkg/models"
)

var (
	igUsername     string
	igPassword     string
	igAccount      string
	igTarget       string
	igFollowers    bool
	igFollowing    bool
	igMaxFollowers int
	igMaxFollowing int
	igHeadless     bool
	igScrollDelay  time.Duration
	igFields       []string
	igCSV          bool
	igOutput       string
)

var instagramCmd = &cobra.Command{
	Use:   "instagram <target>",
	Short: "Extract contact information from an Instagram profile's lists",
	Long: `Log into Instagram in a browser, open the target profile and walk
its follower and following lists, extracting contact details from each
entry's bio.

Credentials come from --username/--password, a stored account
(--account, see 'contactscraper auth login'), or the
INSTAGRAM_USERNAME and INSTAGRAM_PASSWORD environment variables.`,
	Example: `  # Scrape followers and following of a profile
  contactscraper instagram acmebakery

  # Followers only, capped at 200, CSV output
  contactscraper instagram acmebakery --following=false --max-followers 200 --csv -o fans.csv

  # Use a stored account and a visible browser
  contactscraper instagram acmebakery --account work --headless=false`,
	Args: cobra.ExactArgs(1),
	RunE: runInstagram,
}

func init() {
	rootCmd.AddCommand(instagramCmd)

	instagramCmd.Flags().StringVarP(&igUsername, "username", "u", "", "login username")
	instagramCmd.Flags().StringVarP(&igPassword, "password", "p", "", "login password")
	instagramCmd.Flags().StringVarP(&igAccount, "account", "a", "", "use a stored account")
	instagramCmd.Flags().BoolVar(&igFollowers, "followers", true, "scrape the followers list")
	instagramCmd.Flags().BoolVar(&igFollowing, "following", true, "scrape the following list")
	instagramCmd.Flags().IntVar(&igMaxFollowers, "max-followers", 0, "maximum followers to collect (0 = config default)")
	instagramCmd.Flags().IntVar(&igMaxFollowing, "max-following", 0, "maximum following to collect (0 = config default)")
	instagramCmd.Flags().BoolVar(&igHeadless, "headless", true, "run the browser headless")
	instagramCmd.Flags().DurationVar(&igScrollDelay, "scroll-delay", 0, "delay between scroll steps (0 = config default)")
	instagramCmd.Flags().StringSliceVar(&igFields, "fields", nil, "fields to include in the output")
	instagramCmd.Flags().BoolVar(&igCSV, "csv", false, "write CSV instead of JSON")
	instagramCmd.Flags().StringVarP(&igOutput, "output", "o", "", "output file (default: stdout)")
}

func runInstagram(cmd *cobra.Command, args []string) error {
	igTarget = args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cfg.Instagram.Headless = igHeadless
	if igScrollDelay > 0 {
		cfg.Instagram.ScrollDelay = igScrollDelay
	}

	account, err := resolveAccount()
	if err != nil {
		return err
	}

	fields := models.NewFieldSet(igFields...)
	result := instagram.New(&cfg.Instagram, logger.GetLogger()).ScrapeInstagram(instagram.Request{
		Username:        account.Username,
		Password:        account.Password,
		TargetHandle:    igTarget,
		ScrapeFollowers: igFollowers,
		ScrapeFollowing: igFollowing,
		MaxFollowers:    igMaxFollowers,
		MaxFollowing:    igMaxFollowing,
		Fields:          fields,
	})

	if err := writeResult(result, fields, igCSV, igOutput); err != nil {
		return err
	}
	if result.Status == models.BatchError {
		return fmt.Errorf("scrape failed: %s", result.Message)
	}
	return nil
}

// resolveAccount picks credentials in priority order: explicit flags, a
// named stored account, then the default stored or environment account.
func resolveAccount() (*auth.Account, error) {
	if igUsername != "" && igPassword != "" {
		return &auth.Account{Username: igUsername, Password: igPassword}, nil
	}

	manager, err := auth.NewManager()
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}

	if igAccount != "" {
		account, err := manager.Retrieve(igAccount)
		if err != nil {
			return nil, fmt.Errorf("no stored credentials for %q: run 'contactscraper auth login'", igAccount)
		}
		return account, nil
	}

	account, err := manager.RetrieveDefault()
	if err != nil {
		return nil, fmt.Errorf("no credentials available: pass --username/--password, run 'contactscraper auth login', or set INSTAGRAM_USERNAME and INSTAGRAM_PASSWORD")
	}
	return account, nil
}
