package main

import (
	"context"

	"github.com/upliftai/backend/core"
	"github.com/upliftai/backend/core/account"
)

// addStaff registers a new staff account.
func (cli *commandLine) addStaff(email, pwd string) error {
	na := account.NewAccount{
		Email:    core.CleanString(email, true /* lower */),
		Password: pwd,
		Role:     account.RoleStaff,
	}
	_, err := cli.acctSvc.Register(context.Background(), na)
	return err
}
