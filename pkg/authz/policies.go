package authz

// defaultPolicies contains the built-in Cedar authorization policies used
// when no policy source is configured. They grant members of the "admins"
// group every action on every resource and nothing else; deployments are
// expected to supply their own policy set.
const defaultPolicies = `
permit(
  principal in LakeGate::Group::"admins",
  action,
  resource
);
`
