package main

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/upliftai/backend/core/account"
	inmemdb "github.com/upliftai/backend/storage/database/inmem"
)

func setup() (*commandLine, account.Repository) {
	db := inmemdb.Open()
	repo := inmemdb.NewAccountRepository(db)
	return &commandLine{acctSvc: account.NewService(repo)}, repo
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup()

	migrateRunFunc = func(command string, db *sql.DB, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version", "fix": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s requires a VERSION argument", command)
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to requires a VERSION argument"},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			checkCLIErr(t, tt, err)
		})
	}
}

func Test_commandLine_addStaff(t *testing.T) {
	cli, repo := setup()

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addstaff"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"addstaff", "-email", "awe@test.cd"}, wantErr: errHelp},
		{name: "ok", args: []string{"addstaff", "-email", "awe@test.cd"}, pwd: "secret1"},
		{name: "duplicate email", args: []string{"addstaff", "-email", "awe@test.cd"}, pwd: "secret1", wantErr: account.ErrEmailExists},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			checkCLIErr(t, tt, err)
			if err == nil && tt.pwd != "" {
				acct, err := repo.GetAccountByEmail(context.Background(), "awe@test.cd")
				if err != nil {
					t.Fatalf("GetAccountByEmail(): %v", err)
				}
				if !acct.IsStaff() {
					t.Errorf("account role = %s; want %s", acct.Role, account.RoleStaff)
				}
				if err := acct.CheckPassword(tt.pwd); err != nil {
					t.Errorf("CheckPassword(): %v", err)
				}
			}
		})
	}
}

func checkCLIErr(t *testing.T, tt cliTest, err error) {
	t.Helper()
	if err == nil {
		if tt.wantErr != nil || tt.wantErrStr != "" {
			t.Errorf("cli.run() error = nil, want %v%s", tt.wantErr, tt.wantErrStr)
		}
		return
	}
	if tt.wantErr != nil {
		if err != tt.wantErr {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	} else if tt.wantErrStr != "" {
		if err.Error() != tt.wantErrStr {
			t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
		}
	} else {
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}
