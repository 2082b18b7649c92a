// Dietbasket - Market-Basket Analysis of Dietary Survey Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dietbasket

// Package report renders the results of an analysis run: the JSON run
// summary, the top-N rule table printed to the console, and the PNG figures
// (transaction length histogram, top ingredients, confidence vs lift).
package report
