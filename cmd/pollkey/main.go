// Command pollkey registers and authenticates against a passkey-protected
// poll backend using a software authenticator, and manages polls over the
// resulting session.
package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-passkey/pollkey/pkg/ceremony"
	"github.com/go-passkey/pollkey/pkg/options"
	"github.com/go-passkey/pollkey/pkg/polls"
	"github.com/go-passkey/pollkey/pkg/session"
	"github.com/go-passkey/pollkey/pkg/softauthn"
	"github.com/go-passkey/pollkey/pkg/transport"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "pollkey",
		Usage: "passkey login and poll management for a pollkey backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Value:   "http://localhost:8080",
				EnvVars: []string{"POLLKEY_SERVER"},
				Usage:   "backend base URL",
			},
			&cli.StringFlag{
				Name:    "origin",
				EnvVars: []string{"POLLKEY_ORIGIN"},
				Usage:   "origin reported in client data (defaults to the server URL)",
			},
			&cli.StringFlag{
				Name:    "store",
				EnvVars: []string{"POLLKEY_STORE"},
				Usage:   "credential store path (default: user config dir)",
			},
			&cli.StringFlag{
				Name:    "cookies",
				EnvVars: []string{"POLLKEY_COOKIES"},
				Usage:   "session cookie file path (default: user config dir)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging",
			},
		},
		Commands: []*cli.Command{
			registerCommand(),
			loginCommand(),
			logoutCommand(),
			statusCommand(),
			pollsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pollkey:", err)
		os.Exit(1)
	}
}

type env struct {
	transport *transport.Client
	ceremony  *ceremony.Client
	session   *session.Manager
	polls     *polls.Client
	cookies   *cookieFile
}

func newEnv(c *cli.Context) (*env, error) {
	lvl := slog.LevelWarn
	if c.Bool("verbose") {
		lvl = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))

	serverURL, err := url.Parse(c.String("server"))
	if err != nil || serverURL.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", c.String("server"))
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	configDir = filepath.Join(configDir, "pollkey")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, err
	}

	storePath := c.String("store")
	if storePath == "" {
		storePath = filepath.Join(configDir, "credentials.cbor")
	}
	cookiePath := c.String("cookies")
	if cookiePath == "" {
		cookiePath = filepath.Join(configDir, "cookies.json")
	}

	tc, err := transport.NewClient(serverURL.String(), options.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	cookies := &cookieFile{path: cookiePath, serverURL: serverURL}
	if err := cookies.load(tc); err != nil {
		return nil, err
	}

	origin := c.String("origin")
	if origin == "" {
		origin = serverURL.Scheme + "://" + serverURL.Host
	}

	authenticator := softauthn.New(
		origin,
		softauthn.NewFileStore(storePath),
		options.WithLogger(logger),
	)

	state := session.NewState()

	return &env{
		transport: tc,
		ceremony:  ceremony.NewClient(tc, authenticator, state, options.WithLogger(logger)),
		session:   session.NewManager(state, tc),
		polls:     polls.NewClient(tc),
		cookies:   cookies,
	}, nil
}

func requireArg(c *cli.Context, index int, name string) (string, error) {
	v := c.Args().Get(index)
	if v == "" {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return v, nil
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:      "register",
		Usage:     "create a passkey for a username",
		ArgsUsage: "<username>",
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			username, err := requireArg(c, 0, "username")
			if err != nil {
				return err
			}

			if err := e.ceremony.Register(c.Context, username); err != nil {
				return err
			}
			if err := e.cookies.save(e.transport); err != nil {
				return err
			}

			fmt.Printf("registered %s; run `pollkey login %s` to sign in\n", username, username)
			return nil
		},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "authenticate with a previously registered passkey",
		ArgsUsage: "<username>",
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			username, err := requireArg(c, 0, "username")
			if err != nil {
				return err
			}

			if err := e.ceremony.Authenticate(c.Context, username); err != nil {
				return err
			}
			if err := e.cookies.save(e.transport); err != nil {
				return err
			}

			fmt.Printf("logged in as %s\n", username)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "end the current session",
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}

			if err := e.session.Logout(c.Context); err != nil {
				return err
			}
			if err := e.cookies.save(e.transport); err != nil {
				return err
			}

			fmt.Println("logged out")
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "check whether the stored session is still valid",
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}

			if e.session.Probe(c.Context) {
				fmt.Println("session is authenticated")
			} else {
				fmt.Println("not authenticated (or backend unreachable)")
			}
			return nil
		},
	}
}

func pollsCommand() *cli.Command {
	return &cli.Command{
		Name:  "polls",
		Usage: "list, create, and manage polls",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list polls",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "mine", Usage: "only polls created by the current session"},
				},
				Action: func(c *cli.Context) error {
					e, err := newEnv(c)
					if err != nil {
						return err
					}

					filter := polls.ListFilter{}
					if c.Bool("mine") {
						filter.Creator = polls.CreatorMe
					}
					list, err := e.polls.List(c.Context, filter)
					if err != nil {
						return err
					}

					for _, p := range list {
						state := "open"
						if p.IsClosed {
							state = "closed"
						}
						fmt.Printf("%s  %s (%s, %d votes, by %s)\n", p.ID, p.Title, state, p.TotalVotes, p.CreatorUsername)
					}
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "show a poll and its options",
				ArgsUsage: "<pollId>",
				Action: func(c *cli.Context) error {
					e, err := newEnv(c)
					if err != nil {
						return err
					}
					pollID, err := requireArg(c, 0, "pollId")
					if err != nil {
						return err
					}

					p, err := e.polls.Get(c.Context, pollID)
					if err != nil {
						return err
					}

					state := "open"
					if p.IsClosed {
						state = "closed"
					}
					fmt.Printf("%s (%s, by %s)\n", p.Title, state, p.CreatorUsername)
					for _, o := range p.Options {
						fmt.Printf("  %s  %-30s %4d\n", o.ID, o.Text, o.Votes)
					}
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "create a poll",
				ArgsUsage: "<title> <option> <option> [option...]",
				Action: func(c *cli.Context) error {
					e, err := newEnv(c)
					if err != nil {
						return err
					}
					title, err := requireArg(c, 0, "title")
					if err != nil {
						return err
					}
					choices := c.Args().Slice()[1:]
					if len(choices) < 2 {
						return fmt.Errorf("a poll needs at least 2 options")
					}

					pollID, err := e.polls.Create(c.Context, title, choices)
					if err != nil {
						return err
					}

					fmt.Printf("created poll %s\n", pollID)
					return nil
				},
			},
			{
				Name:      "vote",
				Usage:     "vote on a poll option",
				ArgsUsage: "<pollId> <optionId>",
				Action: func(c *cli.Context) error {
					e, err := newEnv(c)
					if err != nil {
						return err
					}
					pollID, err := requireArg(c, 0, "pollId")
					if err != nil {
						return err
					}
					optionID, err := requireArg(c, 1, "optionId")
					if err != nil {
						return err
					}

					if err := e.polls.Vote(c.Context, pollID, optionID); err != nil {
						return err
					}

					fmt.Println("vote recorded")
					return nil
				},
			},
			{
				Name:      "results",
				Usage:     "show poll results",
				ArgsUsage: "<pollId>",
				Action: func(c *cli.Context) error {
					e, err := newEnv(c)
					if err != nil {
						return err
					}
					pollID, err := requireArg(c, 0, "pollId")
					if err != nil {
						return err
					}

					stats, err := e.polls.Results(c.Context, pollID)
					if err != nil {
						return err
					}

					lines := lo.Map(stats.OptionsData, func(o polls.OptionStatistics, _ int) string {
						return fmt.Sprintf("  %-30s %4d (%.1f%%)", o.Text, o.Votes, o.Percentage)
					})
					fmt.Printf("%d votes, created %s\n%s\n", stats.TotalVotes, stats.CreatedAt, strings.Join(lines, "\n"))
					return nil
				},
			},
			{
				Name:      "close",
				Usage:     "close a poll you created",
				ArgsUsage: "<pollId>",
				Action:    pollAction("close", func(e *env, c *cli.Context, pollID string) error { return e.polls.Close(c.Context, pollID) }),
			},
			{
				Name:      "reset",
				Usage:     "reset votes on a poll you created",
				ArgsUsage: "<pollId>",
				Action:    pollAction("reset", func(e *env, c *cli.Context, pollID string) error { return e.polls.Reset(c.Context, pollID) }),
			},
		},
	}
}

func pollAction(verb string, fn func(e *env, c *cli.Context, pollID string) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := newEnv(c)
		if err != nil {
			return err
		}
		pollID, err := requireArg(c, 0, "pollId")
		if err != nil {
			return err
		}

		if err := fn(e, c, pollID); err != nil {
			return err
		}

		fmt.Printf("poll %s %s\n", pollID, verb)
		return nil
	}
}
