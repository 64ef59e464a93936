// folio-admin manages accounts and admin membership directly in Postgres.
//
//	folio-admin create-user -email a@b.io -password secret123
//	folio-admin grant-admin -email a@b.io
//	folio-admin revoke-admin -email a@b.io
//	folio-admin gen-secret
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/folio-cms/folio/backend/internal/service"
	"github.com/folio-cms/folio/backend/internal/storage/pg"
	"github.com/folio-cms/folio/shared/config"
	"github.com/folio-cms/folio/shared/domain"
	"github.com/folio-cms/folio/shared/logger"
	sharedpg "github.com/folio-cms/folio/shared/storage/pg"
	"github.com/folio-cms/folio/shared/utils"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: folio-admin [-config_folder dir] <create-user|grant-admin|revoke-admin|gen-secret> [-email EMAIL] [-password PASSWORD]")
	os.Exit(2)
}

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	command := flag.Arg(0)
	if command == "gen-secret" {
		// paste into private.yaml as jwt_secret
		fmt.Println(utils.GenerateSecret())
		return
	}

	cmd := flag.NewFlagSet(command, flag.ExitOnError)
	email := cmd.String("email", "", "account email")
	password := cmd.String("password", "", "account password (create-user only)")
	cmd.Parse(flag.Args()[1:])
	if *email == "" {
		usage()
	}

	cfg := config.MustLoad(configFolder)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storage, err := pg.New(ctx, cfg.Private.Pg, sharedpg.LightweightConnectionConfig())
	if err != nil {
		fail(err)
	}
	defer storage.Cleanup()

	// tokens are never issued here
	auth := service.NewAuth(storage, nil, nil)

	switch command {
	case "create-user":
		user, err := auth.CreateUser(ctx, domain.Credentials{Email: *email, Password: *password})
		if err != nil {
			fail(err)
		}
		fmt.Printf("created user %s (%s)\n", user.Email, user.Id)
	case "grant-admin":
		if err := auth.SetAdmin(ctx, *email, true); err != nil {
			fail(err)
		}
		fmt.Printf("%s is now an admin\n", *email)
	case "revoke-admin":
		if err := auth.SetAdmin(ctx, *email, false); err != nil {
			fail(err)
		}
		fmt.Printf("%s is no longer an admin\n", *email)
	default:
		usage()
	}
}

func fail(err error) {
	logger.Log.Error("command failed", "error", err)
	os.Exit(1)
}
