package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/storage/inmem"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()

	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("inmem.Open() failed, %v", err)
	}
	usrRepo = inmem.NewUserRepository(db)
	return &commandLine{usrRepo: usrRepo}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	pwd     string
}

func Test_commandLine_addAdmin(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addadmin"}, wantErr: errHelp},
		{name: "username but no email", args: []string{"addadmin", "-username", "root"}, wantErr: errHelp},
		{name: "no password", args: []string{"addadmin", "-username", "root", "-email", "root@test.cd"}, wantErr: errHelp},
		{name: "create admin", args: []string{"addadmin", "-username", "root", "-email", "root@test.cd"}, pwd: "s3cret"},
		{name: "promote existing account", args: []string{"addadmin", "-username", "root", "-email", "root@test.cd"}, pwd: "n3ws3cret"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			usr, err := usrRepo.GetUserByEmail(context.Background(), "root@test.cd")
			if err != nil {
				t.Fatalf("GetUserByEmail() failed, %v", err)
			}
			if usr.Role != user.RoleAdmin {
				t.Errorf("role = %q, want %q", usr.Role, user.RoleAdmin)
			}
			if len(usr.PasswordHash) == 0 || bytes.Equal(usr.PasswordHash, []byte(tt.pwd)) {
				t.Error("password not hashed")
			}
			if err := usr.CheckPassword(tt.pwd); err != nil {
				t.Errorf("CheckPassword(%q) failed, %v", tt.pwd, err)
			}
		})
	}
}
