package service

import "github.com/voltra-app/voltra-go/internal/model"

// sampleOpportunities is the built-in listing set appended after
// organization-derived entries. The catalog currently ships empty; real
// listings all come from organizations.
var sampleOpportunities = []model.Opportunity{}
