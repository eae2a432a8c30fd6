package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// capabilityModel grants a capability when some allow policy matches the
// subject (directly or through its role) and no deny policy does.
const capabilityModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj, eft

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow)) && !some(where (p.eft == deny))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj
`

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(capabilityModel)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
