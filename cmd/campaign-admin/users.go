package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	redisadapter "github.com/Asad13/ad-campaign-builder-backend/internal/adapters/redis"
	"github.com/Asad13/ad-campaign-builder-backend/internal/bootstrap"
	"github.com/Asad13/ad-campaign-builder-backend/internal/core"
	"github.com/Asad13/ad-campaign-builder-backend/internal/data"
	domainauth "github.com/Asad13/ad-campaign-builder-backend/internal/domain/auth"
	"github.com/Asad13/ad-campaign-builder-backend/internal/domain/model"
	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

const (
	defaultQueryTimeout = 30 * time.Second
	defaultListLimit    = 50
)

type revokeOptions struct {
	UserID string
}

func parseRevokeFlags(args []string) (revokeOptions, error) {
	fs := flag.NewFlagSet("revoke-session", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := revokeOptions{}
	fs.StringVar(&opts.UserID, "user", "", "ID of the user whose refresh session is deleted")

	if err := fs.Parse(args); err != nil {
		return revokeOptions{}, err
	}
	opts.UserID = strings.TrimSpace(opts.UserID)
	if opts.UserID == "" {
		return revokeOptions{}, errors.New("--user is required")
	}
	if _, err := uuid.Parse(opts.UserID); err != nil {
		return revokeOptions{}, fmt.Errorf("--user must be a UUID: %w", err)
	}
	return opts, nil
}

func runRevokeSession(cmdCtx *commandContext, args []string) error {
	opts, err := parseRevokeFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultQueryTimeout)
	defer cancel()

	client, err := bootstrap.ConnectRedis(ctx, bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", cerr)
		}
	}()

	store := redisadapter.NewSessionStoreWithPrefix(client, cmdCtx.Config.Redis.KeyPrefix)
	return revokeSession(ctx, store, opts.UserID, cmdCtx.Out)
}

// revokeSession deletes the refresh record. Access tokens already issued stay
// valid until they expire.
func revokeSession(ctx context.Context, store ports.SessionStore, userID string, out io.Writer) error {
	_, err := store.GetRefreshToken(ctx, userID)
	switch {
	case errors.Is(err, ports.ErrSessionNotFound):
		return writef(out, "No active session for user %s\n", userID)
	case err != nil:
		return fmt.Errorf("read session: %w", err)
	}
	if err := store.DeleteRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return writef(out, "Revoked refresh session for user %s\n", userID)
}

type listUsersOptions struct {
	GroupID string
	Limit   int
	Offset  int
}

func parseListUsersFlags(args []string) (listUsersOptions, error) {
	fs := flag.NewFlagSet("list-users", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := listUsersOptions{}
	fs.StringVar(&opts.GroupID, "group", "", "Group ID to list")
	fs.IntVar(&opts.Limit, "limit", defaultListLimit, "Maximum number of members to print")
	fs.IntVar(&opts.Offset, "offset", 0, "Number of members to skip")

	if err := fs.Parse(args); err != nil {
		return listUsersOptions{}, err
	}
	opts.GroupID = strings.TrimSpace(opts.GroupID)
	if opts.GroupID == "" {
		return listUsersOptions{}, errors.New("--group is required")
	}
	if opts.Limit <= 0 {
		return listUsersOptions{}, errors.New("--limit must be greater than zero")
	}
	if opts.Offset < 0 {
		return listUsersOptions{}, errors.New("--offset must not be negative")
	}
	return opts, nil
}

func runListUsers(cmdCtx *commandContext, args []string) error {
	opts, err := parseListUsersFlags(args)
	if err != nil {
		return err
	}
	return withDatabase(cmdCtx, defaultQueryTimeout, func(ctx context.Context, db *sql.DB) error {
		return listUsers(ctx, data.NewUserRepo(db), opts, cmdCtx.Out)
	})
}

func listUsers(ctx context.Context, users core.UserRepository, opts listUsersOptions, out io.Writer) error {
	var (
		total   int
		members []*model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := users.CountByGroup(gctx, opts.GroupID)
		if err != nil {
			return fmt.Errorf("count members: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		list, err := users.ListByGroup(gctx, opts.GroupID, opts.Limit, opts.Offset)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		members = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return renderMembers(out, opts.GroupID, total, members)
}

func renderMembers(out io.Writer, groupID string, total int, members []*model.User) error {
	if err := writef(out, "Group %s: %d active member(s)\n", groupID, total); err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ID\tEMAIL\tNAME\tROLE\tVERIFIED\tCREATED\n"); err != nil {
		return err
	}
	for _, u := range members {
		role := "unknown"
		if r, err := domainauth.RoleFromID(u.RoleID); err == nil {
			role = string(r)
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			u.ID, u.Email, u.DisplayName(), role, u.IsVerified, u.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tw.Flush()
}
