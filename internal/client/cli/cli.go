// Package cli implements the formadmin commands. Every command goes
// through the authenticated HTTP client; session state lives in the local
// bolt database between invocations.
package cli

import (
	"context"
	"fmt"

	"github.com/nberthel/formadmin/internal/client/api"
	"github.com/nberthel/formadmin/internal/client/auth"
	"github.com/nberthel/formadmin/internal/client/iocli"
	"github.com/nberthel/formadmin/internal/client/storage"
)

type Cli struct {
	io        iocli.IO
	client    *api.Client
	resources *api.Resources
	auth      *auth.Controller
	prefs     storage.PrefsStorage
	registry  map[string]handler
}

func New(io iocli.IO, client *api.Client, resources *api.Resources, authCtl *auth.Controller, prefs storage.PrefsStorage) *Cli {
	c := &Cli{
		io:        io,
		client:    client,
		resources: resources,
		auth:      authCtl,
		prefs:     prefs,
	}
	c.registry = newRegistry(resources)
	return c
}

// Run dispatches one command. Resource commands take the resource name as
// their first argument: "formadmin list formations --search cap".
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "register":
		return c.runRegister(ctx)
	case "status":
		return c.runStatus(ctx)
	case "search":
		return c.runSearch(ctx, args)
	case "theme":
		return c.runTheme(ctx, args)
	case "choices":
		return c.runChoices(ctx)
	case "formation":
		return c.runFormation(ctx, args)
	case "upload":
		return c.runUpload(ctx, args)
	case "list":
		return c.withResource(args, func(h handler, rest []string) error {
			return c.runList(ctx, h, rest)
		})
	case "get":
		return c.withResource(args, func(h handler, rest []string) error {
			return c.runGet(ctx, h, rest)
		})
	case "create":
		return c.withResource(args, func(h handler, rest []string) error {
			return c.runCreate(ctx, h, rest)
		})
	case "update":
		return c.withResource(args, func(h handler, rest []string) error {
			return c.runUpdate(ctx, h, rest)
		})
	case "delete":
		return c.withResource(args, func(h handler, rest []string) error {
			return c.runDelete(ctx, h, rest)
		})
	case "browse":
		return c.withResource(args, func(h handler, rest []string) error {
			return c.runBrowse(ctx, h)
		})
	case "export":
		return c.withResource(args, func(h handler, rest []string) error {
			return c.runExport(ctx, h, rest)
		})
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// withResource resolves the resource named by the first argument and hands
// the remaining arguments to fn.
func (c *Cli) withResource(args []string, fn func(h handler, rest []string) error) error {
	if len(args) == 0 {
		return fmt.Errorf("missing resource name. Known resources: %s", knownResources(c.registry))
	}
	h, ok := c.registry[args[0]]
	if !ok {
		return fmt.Errorf("unknown resource %q. Known resources: %s", args[0], knownResources(c.registry))
	}
	return fn(h, args[1:])
}

func (c *Cli) PrintUsage() {
	c.io.Println("formadmin - training-program administration client")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  formadmin [OPTIONS] COMMAND [ARGS]")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  --version        Show version information")
	c.io.Println("  --server URL     API base URL (default: http://localhost:8000/api)")
	c.io.Println("  --db PATH        Path to local database")
	c.io.Println()
	c.io.Println("Session commands:")
	c.io.Println("  register                     Create an account")
	c.io.Println("  login                        Sign in and store the session")
	c.io.Println("  logout                       Sign out and clear the session")
	c.io.Println("  status                       Show session and token status")
	c.io.Println("  theme [light|dark]           Show or set the display theme")
	c.io.Println()
	c.io.Println("Resource commands (RESOURCE is one of: " + knownResources(c.registry) + "):")
	c.io.Println("  list RESOURCE [--search TEXT] [--page N] [--page-size N]")
	c.io.Println("                [--ordering KEY] [--filter k=v]...")
	c.io.Println("  get RESOURCE ID              Show one record")
	c.io.Println("  create RESOURCE field=value...")
	c.io.Println("  update RESOURCE ID field=value...")
	c.io.Println("  delete RESOURCE ID [--yes]")
	c.io.Println("  browse RESOURCE              Interactive pagination/filter mode")
	c.io.Println("  export RESOURCE --format csv|pdf|word [--out PATH] [list flags]")
	c.io.Println("  formation ID SECTION [list flags]")
	c.io.Println("                               Nested data of one formation (commentaires,")
	c.io.Println("                               documents, evenements, prospections,")
	c.io.Println("                               partenaires, historique)")
	c.io.Println()
	c.io.Println("Other commands:")
	c.io.Println("  search TEXT                  Global search across resources")
	c.io.Println("  choices                      Show formation form reference data")
	c.io.Println("  upload PATH field=value...   Upload a document (formation=ID required)")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  formadmin login")
	c.io.Println("  formadmin list formations --search cap --filter centre=3")
	c.io.Println("  formadmin create candidats nom=Dupont prenom=Anne email=a.dupont@example.fr")
	c.io.Println("  formadmin export prospections --format pdf --out prospections.pdf")
	c.io.Println("  formadmin upload convention.pdf formation=12 type_document=convention")
}
