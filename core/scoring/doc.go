// Package scoring implements the station recommendation engine. A request is
// scored by four independent strategies over a shared feature vector per
// station; their individual winners are reduced to a single consensus pick by
// plurality vote on the station name.
//
// All computation is request-scoped. Apart from the evolving-weight strategy,
// which draws from an injected random source, every function here is a pure
// function of its inputs.
package scoring
