/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

import "strings"

// defaultDictionary is the embedded AI syntax dictionary, in the same text
// format Load accepts from external dictionary files.
const defaultDictionary = `
# GS1 Application Identifier syntax dictionary.
#
# Columns: AIs, flags, component specification, attributes, title.
# The '*' flag marks AIs requiring FNC1 termination; '-' marks the
# predefined fixed-length AIs.

00         -  N18,csum,key             dlpkey                          # SSCC
01         -  N14,csum,key             ex=02,8006 dlpkey=22,10,21|235  # GTIN
02         -  N14,csum,key             ex=01,8006 req=37               # CONTENT
10         *  X..20                    req=01,02,8006,8026             # BATCH/LOT
11         -  N6,yymmd0                req=01,02,8006,8026             # PROD DATE
12         -  N6,yymmd0                req=8020                        # DUE DATE
13         -  N6,yymmd0                req=01,02,8006,8026             # PACK DATE
15         -  N6,yymmd0                req=01,02,8006,8026             # BEST BEFORE or BEST BY
16         -  N6,yymmd0                req=01,02,8006,8026             # SELL BY
17         -  N6,yymmd0                req=01,02,8006,8026             # USE BY or EXPIRY
20         -  N2                       req=01,02,8006,8026             # VARIANT
21         *  X..20                    req=01,8006 ex=235              # SERIAL
22         *  X..20                    req=01                          # CPV
235        *  X..28                    req=01 ex=21                    # TPX
240        *  X..30                    req=01,02,8006,8026             # ADDITIONAL ID
241        *  X..30                    req=01,02,8006,8026             # CUST. PART No.
242        *  N..6                     req=01,02,8006,8026             # MTO VARIANT
243        *  X..20                    req=01                          # PCN
250        *  X..30                    req=01,8006 req=21              # SECONDARY SERIAL
251        *  X..30                    req=01,8006                     # REF. TO SOURCE
253        *  N13,csum,key [X..17]     dlpkey                          # GDTI
254        *  X..20                    req=414                         # GLN EXTENSION COMPONENT
255        *  N13,csum,key [N..12]     dlpkey                          # GCN
30         *  N..8                     req=01,02                       # VAR COUNT
3100-3105  -  N6                       req=01,02 ex=310n               # NET WEIGHT (kg)
3200-3205  -  N6                       req=01,02 ex=320n               # NET WEIGHT (lb)
37         *  N..8                     req=00,02,8026                  # COUNT
3900-3909  *  N..15                    req=8020 ex=391n                # AMOUNT
3910-3919  *  N3,iso4217 N..15         req=8020 ex=390n                # AMOUNT
400        *  X..30                                                    # ORDER NUMBER
410        -  N13,csum,key                                             # SHIP TO LOC
414        -  N13,csum,key             dlpkey=254|7040                 # LOC No.
415        -  N13,csum,key             dlpkey=8020                     # PAY TO
417        -  N13,csum,key             dlpkey                          # PARTY
420        *  X..20                                                    # SHIP TO POST
421        *  N3,iso3166 X..9                                          # SHIP TO POST
422        *  N3,iso3166               req=01,02,8006,8026             # ORIGIN
7040       *  N1 X1 X1 X1                                              # UIC+EXT
8003       *  N1 N13,csum,key [X..16]  dlpkey                          # GRAI
8004       *  X..30                    dlpkey=7040                     # GIAI
8006       *  N14,csum,key N4,pieceoftotal  ex=01,02 dlpkey=22,10,21   # ITIP
8010       *  Y..30,key                dlpkey=8011                     # CPID
8011       *  N..12,nozeroprefix       req=8010                        # CPID SERIAL
8017       *  N18,csum,key             ex=8018 dlpkey=8019             # GSRN - PROVIDER
8018       *  N18,csum,key             ex=8017 dlpkey=8019             # GSRN - RECIPIENT
8019       *  N..10                    req=8017,8018                   # SRIN
8020       *  X..25                    req=415                         # REF No.
8026       *  N14,csum,key N4,pieceoftotal  ex=02,8006 req=37          # ITIP CONTENT
8030       *  Z..90                                                    # DIGSIG
8110       *  X..70                    ex=8112                         # COUPON CODE
8112       *  X..70                    ex=8110                         # PAPERLESS COUPON
8200       *  X..70                    req=01                          # PRODUCT URL
90         *  X..30                                                    # INTERNAL
91         *  X..90                                                    # INTERNAL
92         *  X..90                                                    # INTERNAL
93         *  X..90                                                    # INTERNAL
94         *  X..90                                                    # INTERNAL
95         *  X..90                                                    # INTERNAL
96         *  X..90                                                    # INTERNAL
97         *  X..90                                                    # INTERNAL
98         *  X..90                                                    # INTERNAL
99         *  X..90                                                    # INTERNAL
`

// Default builds the Table from the embedded syntax dictionary.
func Default() (*Table, error) {
	return Load(strings.NewReader(defaultDictionary))
}
