// Package steam provides the inventory and metadata providers backed by the
// Steam Web API and storefront API.
//
// The inventory side (OwnedGames) reports each title's cumulative playtime
// in minutes and its last-played epoch. The metadata side (Achievements,
// StoreDetails) is strictly best-effort: a 4xx on the
// achievements lookup is a legitimate "no data" signal and maps to the
// AbsentAchievements sentinel, and storefront fields missing for a region
// default to empty values with one retry against a fallback region.
package steam
