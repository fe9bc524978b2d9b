package route

// helvellynPoints is the Striding Edge circuit from Glenridding, Lake District.
var helvellynPoints = [][6]float64{
	{54.543984040073966, -2.9494287395596563, 152, 0, 0, 0},
	{54.543647218773046, -2.95124944499458, 156, 120, 86, 3},
	{54.543060739381, -2.9525248775168, 159.9, 220, 158, 4},
	{54.542622351193, -2.95398313471028, 167.5, 330, 238, 8},
	{54.54279138822, -2.95533962441805, 167.4, 430, 310, 0},
	{54.543141649681, -2.95650714406822, 171.3, 530, 382, 4},
	{54.543333122224, -2.95786418746611, 174.1, 630, 454, 3},
	{54.543365186491, -2.95948801639296, 177.2, 750, 540, 3},
	{54.543218131644, -2.96103034789064, 181.8, 860, 619, 4},
	{54.542781793426, -2.9622180597544, 201.4, 970, 698, 15},
	{54.542393756315, -2.96298180284215, 216.8, 1050, 756, 16},
	{54.542189543895, -2.96343593078099, 221.2, 1100, 792, 8},
	{54.542015276185, -2.96385435538829, 230.7, 1140, 821, 19},
	{54.54184100773, -2.96441225486448, 242.2, 1190, 857, 20},
	{54.541020410128, -2.96544314928587, 268.1, 1310, 943, 18},
	{54.540116758497, -2.9666697666975, 295.4, 1450, 1044, 17},
	{54.539519235757, -2.96772119263426, 312.9, 1560, 1123, 14},
	{54.538996396181, -2.96855804184924, 358.1, 1670, 1202, 35},
	{54.538398857036, -2.96913739899872, 375.2, 1760, 1267, 16},
	{54.537751513087, -2.96986695985321, 397.8, 1860, 1339, 19},
	{54.537216201683, -2.97076818208477, 431.4, 1960, 1411, 28},
	{54.536693332602, -2.97175523500485, 460.4, 2060, 1483, 24},
	{54.536182906324, -2.97289249162988, 496.2, 2170, 1562, 28},
	{54.535660024005, -2.97407266359941, 506.1, 2280, 1641, 8},
	{54.535473278698, -2.97557470065037, 534.8, 2400, 1728, 21},
	{54.535560426615, -2.97737714511099, 575, 2530, 1821, 27},
	{54.535722272254, -2.97847148639037, 591.1, 2620, 1886, 15},
	{54.535784520406, -2.97990915042435, 628.7, 2730, 1965, 30},
	{54.535921466007, -2.9815184758354, 675.4, 2860, 2059, 31},
	{54.536120658785, -2.98304197055771, 701.4, 2980, 2145, 19},
	{54.536108209265, -2.98379298908303, 707.2, 3040, 2188, 9},
	{54.535747171529, -2.98445817692055, 710.9, 3110, 2239, 5},
	{54.535211833835, -2.98510190708633, 715.6, 3190, 2296, 5},
	{54.534688939076, -2.985895840957, 708.6, 3280, 2361, -7},
	{54.534103786997, -2.98692580922152, 702.3, 3380, 2433, -6},
	{54.533369222514, -2.98802015050288, 700.2, 3490, 2512, -2},
	{54.532721798788, -2.98920032247251, 700.2, 3600, 2591, 0},
	{54.532049463282, -2.990316121426, 694.2, 3720, 2678, -5},
	{54.531302410842, -2.99141046270725, 698.2, 3850, 2771, 4},
	{54.530928879495, -2.99164649710175, 704.4, 3900, 2807, 12},
	{54.530134677283, -2.9923554332736, 719.7, 4010, 2886, 13},
	{54.529238170665, -2.99321374016165, 728.1, 4130, 2973, 6},
	{54.52866539224, -2.99475869255779, 744.1, 4270, 3074, 10},
	{54.528142413618, -2.99643239098682, 757, 4410, 3175, 8},
	{54.527691170446, -2.99802343584399, 773.8, 4540, 3268, 11},
	{54.527604005728, -2.99883882738602, 781.3, 4610, 3319, 10},
	{54.527404771387, -2.9998044226333, 800.9, 4690, 3376, 22},
	{54.527018752084, -3.00072710253672, 814.4, 4790, 3448, 12},
	{54.526582919451, -3.00171415545652, 806.6, 4890, 3520, -7},
	{54.526196892379, -3.00274412372066, 812.6, 4990, 3592, 5},
	{54.52573614561, -3.00383846500145, 833.5, 5100, 3671, 17},
	{54.525424827283, -3.0049328062819, 860.5, 5210, 3750, 22},
	{54.525337657726, -3.00626318195543, 848, 5320, 3829, -10},
	{54.525399921715, -3.00761501530086, 837.5, 5420, 3901, -9},
	{54.5254995439, -3.00907413700694, 826.2, 5530, 3980, -9},
	{54.525661429432, -3.01070492009009, 830.2, 5660, 4073, 3},
	{54.525873124928, -3.01250736455041, 838.8, 5800, 4174, 5},
	{54.525910482842, -3.01420252065028, 897.3, 5930, 4268, 40},
	{54.526122177047, -3.01501791219169, 916, 6000, 4318, 24},
	{54.526433490057, -3.01591913442128, 934, 6080, 4376, 20},
	{54.526744800695, -3.01686327199533, 942.1, 6170, 4441, 8},
	{54.526944038258, -3.01767866353657, 940.6, 6250, 4498, -2},
	{54.527519519494, -3.01868800645892, 941.4, 6350, 4570, 1},
	{54.528216833476, -3.01916007524485, 947, 6450, 4642, 5},
	{54.528814521695, -3.01860217576762, 906.1, 6540, 4707, -40},
	{54.529586522694, -3.01740054612534, 854.8, 6670, 4800, -35},
	{54.530159288194, -3.0158555937292, 854.4, 6800, 4893, 0},
	{54.53055772902, -3.01435355667772, 830.5, 6930, 4986, -17},
	{54.531005970301, -3.01306609634764, 812.8, 7050, 5072, -13},
	{54.531504010396, -3.01203612808333, 829.5, 7160, 5151, 14},
	{54.531205187068, -3.01139239791931, 816, 7230, 5201, -17},
	{54.530806752559, -3.01014785293542, 775.8, 7340, 5280, -33},
	{54.530756947972, -3.00843123916339, 756.1, 7470, 5373, -14},
	{54.530831654828, -3.0064571333253, 729.7, 7620, 5481, -16},
	{54.530707143322, -3.00478343489774, 718.8, 7750, 5574, -8},
	{54.530931263757, -3.00272349837066, 707.5, 7910, 5689, -7},
	{54.531479108529, -3.0004919004657, 687.8, 8090, 5818, -10},
	{54.532076748987, -2.9984319639378, 665.5, 8260, 5940, -12},
	{54.532674380695, -2.99723033429611, 634.2, 8390, 6033, -21},
	{54.533521010638, -2.99650077344102, 616.8, 8510, 6119, -13},
	{54.534467223324, -2.9968440961935, 608.5, 8620, 6198, -7},
	{54.534940321441, -2.99598578930629, 585.1, 8700, 6255, -26},
	{54.535612609333, -2.99602870464929, 564.9, 8780, 6312, -23},
	{54.536533874755, -2.99615745068008, 536, 8890, 6391, -24},
	{54.538034012603, -2.99610514676714, 496.6, 9060, 6513, -22},
	{54.539201488855, -2.99621087065329, 488.4, 9190, 6606, -6},
	{54.540732202517, -2.99586174431692, 436, 9370, 6735, -28},
	{54.542044000534, -2.99481167721932, 395.6, 9540, 6857, -22},
	{54.543184964379, -2.99267534004162, 400.6, 9720, 6986, 3},
	{54.544775165217, -2.99054976993895, 378.3, 9930, 7137, -10},
	{54.546415307482, -2.98780688014219, 355.4, 10180, 7316, -9},
	{54.546751231687, -2.98518693336201, 353.3, 10380, 7459, -1},
	{54.546682123645, -2.98263450400256, 335.1, 10570, 7595, -9},
	{54.545811776631, -2.97913534283963, 320, 10830, 7781, -6},
	{54.544802179772, -2.97617405445109, 321.5, 11080, 7960, 1},
	{54.544218488725, -2.97328038729252, 302, 11310, 8125, -8},
	{54.543717041543, -2.97137483945688, 301.7, 11470, 8239, 0},
	{54.543285123483, -2.96920047493805, 293.9, 11650, 8368, -4},
	{54.542980222011, -2.96799527072538, 282.5, 11760, 8447, -10},
	{54.542630380669, -2.96678902190372, 287.6, 11870, 8526, 4},
	{54.542052185617, -2.96604112247551, 274.6, 11950, 8583, -15},
	{54.54158753875, -2.96514135310661, 260.6, 12030, 8640, -16},
	{54.542044213395, -2.9642246904805, 230.7, 12120, 8705, -30},
	{54.542455645559, -2.96334558533839, 216.8, 12200, 8762, -16},
	{54.543028007745, -2.96200651857595, 201.4, 12310, 8841, -13},
	{54.543445562625, -2.96035461842972, 177.8, 12450, 8941, -16},
	{54.54348059552, -2.95877100386573, 176.1, 12570, 9027, -1},
	{54.543360194633, -2.95695187932172, 168.8, 12710, 9127, -5},
	{54.543034233365, -2.9555530513829, 167.4, 12830, 9213, -1},
	{54.542819965984, -2.95423414117557, 165.8, 12940, 9292, -1},
	{54.543145124082, -2.952889174109, 161.9, 13060, 9378, -3},
	{54.54369764266, -2.9512016730169, 157.1, 13200, 9478, -3},
	{54.544004247178, -2.94935383374176, 152.8, 13350, 9586, -3},
}
