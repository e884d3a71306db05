// Package cost decodes the payment representations found in trip documents.
//
// Two dialects coexist. The current one is tagged:
//
//	{"paymentType": "hybrid", "cashAmount": 120, "pointsAmount": 15000,
//	 "pointsProgram": "chase-ultimate-rewards", "totalCashValue": 345}
//
// The legacy one is a flat cash amount, either {"cash": 120} or a bare number.
// Costs are annotations: decoding never fails, unreadable input is a zero
// cash cost.
package cost
