package war

// Статические справочники: имена планет, состав секторов, фракции.
// Данные API приходят только с числовыми индексами, имена берём отсюда.

var planetNames = map[int]string{
	0:   "Super Earth",
	1:   "Klen Dahth II",
	2:   "Pathfinder V",
	3:   "Widow's Harbor",
	4:   "New Haven",
	5:   "Pilen V",
	6:   "Hydrofall Prime",
	7:   "Zea Rugosia",
	8:   "Darrowsport",
	9:   "Fornskogur II",
	10:  "Midasburg",
	11:  "Cerberus IIIc",
	12:  "Prosperity Falls",
	13:  "Okul VI",
	14:  "Martyr's Bay",
	15:  "Freedom Peak",
	16:  "Fort Union",
	17:  "Kelvinor",
	18:  "Wraith",
	19:  "Igla",
	20:  "New Kiruna",
	21:  "Fort Justice",
	22:  "Zegema Paradise",
	23:  "Providence",
	24:  "Primordia",
	25:  "Sulfura",
	26:  "Nublaria I",
	27:  "Krakatwo",
	28:  "Volterra",
	29:  "Crucible",
	30:  "Veil",
	31:  "Marre IV",
	32:  "Fort Sanctuary",
	33:  "Seyshel Beach",
	34:  "Hellmire",
	35:  "Effluvia",
	36:  "Solghast",
	37:  "Diluvia",
	38:  "Viridia Prime",
	39:  "Obari",
	40:  "Myradesh",
	41:  "Atrama",
	42:  "Emeria",
	43:  "Barabos",
	44:  "Fenmire",
	45:  "Mastia",
	46:  "Shallus",
	47:  "Krakabos",
	48:  "Iridica",
	49:  "Azterra",
	50:  "Azur Secundus",
	51:  "Ivis",
	52:  "Slif",
	53:  "Caramoor",
	54:  "Kharst",
	55:  "Eukoria",
	56:  "Myrium",
	57:  "Kerth Secundus",
	58:  "Parsh",
	59:  "Reaf",
	60:  "Irulta",
	61:  "Emorath",
	62:  "Ilduna Prime",
	63:  "Maw",
	64:  "Meridia",
	65:  "Borea",
	66:  "Curia",
	67:  "Tarsh",
	68:  "Shelt",
	69:  "Imber",
	70:  "Blistica",
	71:  "Ratch",
	72:  "Julheim",
	73:  "Valgaard",
	74:  "Arkturus",
	75:  "Esker",
	76:  "Terrek",
	77:  "Cirrus",
	78:  "Crimsica",
	79:  "Heeth",
	80:  "Veld",
	81:  "Alta V",
	82:  "Ursica XI",
	83:  "Inari",
	84:  "Skaash",
	85:  "Moradesh",
	86:  "Rasp",
	87:  "Bashyr",
	88:  "Regnus",
	89:  "Mog",
	90:  "Valmox",
	91:  "Iro",
	92:  "Grafmere",
	93:  "New Stockholm",
	94:  "Oasis",
	95:  "Genesis Prime",
	96:  "Outpost 32",
	97:  "Calypso",
	98:  "Elysian Meadows",
	99:  "Alderidge Cove",
	100: "Trandor",
	101: "East Iridium Trading Bay",
	102: "Liberty Ridge",
	103: "Baldrick Prime",
	104: "The Weir",
	105: "Kuper",
	106: "Oslo Station",
	107: "Pöpli IX",
	108: "Gunvald",
	109: "Dolph",
	110: "Bekvam III",
	111: "Duma Tyr",
	112: "Vernen Wells",
	113: "Aesir Pass",
	114: "Aurora Bay",
	115: "Penta",
	116: "Gaellivare",
	117: "Vog-sojoth",
	118: "Kirrik",
	119: "Mortax Prime",
	120: "Wilford Station",
	121: "Pioneer II",
	122: "Erson Sands",
	123: "Socorro III",
	124: "Bore Rock",
	125: "Fenrir III",
	126: "Turing",
	127: "Angel's Venture",
	128: "Darius II",
	129: "Acamar IV",
	130: "Achernar Secundus",
	131: "Achird III",
	132: "Acrab XI",
	133: "Acrux IX",
	134: "Acubens Prime",
	135: "Adhara",
	136: "Afoyay Bay",
	137: "Ain-5",
	138: "Alairt III",
	139: "Alamak VII",
	140: "Alaraph",
	141: "Alathfar XI",
	142: "Andar",
	143: "Asperoth Prime",
	144: "Bellatrix",
	145: "Botein",
	146: "Osupsam",
	147: "Brink-2",
	148: "Bunda Secundus",
	149: "Canopus",
	150: "Caph",
	151: "Castor",
	152: "Durgen",
	153: "Draupnir",
	154: "Mort",
	155: "Ingmar",
	156: "Charbal-VII",
	157: "Charon Prime",
	158: "Choepessa IV",
	159: "Choohe",
	160: "Chort Bay",
	161: "Claorell",
	162: "Clasa",
	163: "Demiurg",
	164: "Deneb Secundus",
	165: "Electra Bay",
	166: "Enuliale",
	167: "Epsilon Phoencis VI",
	168: "Erata Prime",
	169: "Estanu",
	170: "Fori Prime",
	171: "Gacrux",
	172: "Gar Haren",
	173: "Gatria",
	174: "Gemma",
	175: "Grand Errant",
	176: "Hadar",
	177: "Haka",
	178: "Haldus",
	179: "Halies Port",
	180: "Herthon Secundus",
	181: "Hesoe Prime",
	182: "Heze Bay",
	183: "Hort",
	184: "Hydrobius",
	185: "Karlia",
	186: "Keid",
	187: "Khandark",
	188: "Klaka 5",
	189: "Kneth Port",
	190: "Kraz",
	191: "Kuma",
	192: "Lastofe",
	193: "Leng Secundus",
	194: "Lesath",
	195: "Maia",
	196: "Malevelon Creek",
	197: "Mantes",
	198: "Marfark",
	199: "Martale",
	200: "Matar Bay",
	201: "Meissa",
	202: "Mekbuda",
	203: "Menkent",
	204: "Merak",
	205: "Merga IV",
	206: "Minchir",
	207: "Mintoria",
	208: "Mordia 9",
	209: "Nabatea Secundus",
	210: "Navi VII",
	211: "Nivel 43",
	212: "Oshaune",
	213: "Overgoe Prime",
	214: "Pandion-XXIV",
	215: "Partion",
	216: "Peacock",
	217: "Phact Bay",
	218: "Pherkad Secundus",
	219: "Polaris Prime",
	220: "Pollux 31",
	221: "Prasa",
	222: "Propus",
	223: "Ras Algethi",
	224: "Rd-4",
	225: "Rogue 5",
	226: "Rirga Bay",
	227: "Seasse",
	228: "Senge 23",
	229: "Setia",
	230: "Shete",
	231: "Siemnot",
	232: "Sirius",
	233: "Skat Bay",
	234: "Spherion",
	235: "Stor Tha Prime",
	236: "Stout",
	237: "Termadon",
	238: "Tibit",
	239: "Tien Kwan",
	240: "Troost",
	241: "Ubanea",
	242: "Ustotu",
	243: "Vandalon IV",
	244: "Varylia 5",
	245: "Wasat",
	246: "Vega Bay",
	247: "Wezen",
	248: "Vindemitarix Prime",
	249: "X-45",
	250: "Yed Prior",
	251: "Zefia",
	252: "Zosma",
	253: "Zzaniah Prime",
	254: "Skitter",
	255: "Euphoria III",
	256: "Diaspora X",
	257: "Gemstone Bluffs",
	258: "Zagon Prime",
	259: "Omicron",
	260: "Cyberstan",
}

var sectorDefs = []SectorDef{
	{Index: 0, Name: "Sol", Planets: []int{0}},
	{Index: 1, Name: "Altus", Planets: []int{2, 1, 3, 4, 5}},
	{Index: 2, Name: "Barnard", Planets: []int{6, 8, 10, 9, 30, 31}},
	{Index: 3, Name: "Cancri", Planets: []int{32, 33, 35, 11, 12}},
	{Index: 4, Name: "Gothmar", Planets: []int{13, 36, 37}},
	{Index: 5, Name: "Cantolus", Planets: []int{38, 39, 15, 14, 17}},
	{Index: 6, Name: "Idun", Planets: []int{18, 41, 40, 63}},
	{Index: 7, Name: "Kelvin", Planets: []int{42, 19, 20, 21, 22}},
	{Index: 8, Name: "Iptus", Planets: []int{23, 24, 47, 48, 71, 73}},
	{Index: 9, Name: "Celeste", Planets: []int{25, 26, 27, 51, 52, 85}},
	{Index: 10, Name: "Korpus", Planets: []int{28, 29, 83, 53, 81}},
	{Index: 11, Name: "Gallux", Planets: []int{54, 87, 86, 134, 135, 136}},
	{Index: 12, Name: "Morgon", Planets: []int{89, 88, 55, 56}},
	{Index: 13, Name: "Rictus", Planets: []int{90, 91, 92, 94, 95, 57, 58}},
	{Index: 14, Name: "Saleria", Planets: []int{97, 96, 59, 60}},
	{Index: 15, Name: "Meridian", Planets: []int{61, 62, 103, 102}},
	{Index: 16, Name: "Theseus", Planets: []int{104, 105, 150, 151, 192, 239}},
	{Index: 17, Name: "Sagan", Planets: []int{65, 106, 108}},
	{Index: 18, Name: "Marspira", Planets: []int{43, 44, 66, 67, 45}},
	{Index: 19, Name: "Talus", Planets: []int{68, 46, 69, 116}},
	{Index: 20, Name: "Orion", Planets: []int{16, 49, 76, 77, 79, 127, 80}},
	{Index: 21, Name: "Draco", Planets: []int{169, 78, 170}},
	{Index: 22, Name: "Umlaut", Planets: []int{64, 125, 126, 168}},
	{Index: 23, Name: "Borgus", Planets: []int{82, 128, 131, 130}},
	{Index: 24, Name: "Ursa", Planets: []int{84, 132, 174, 133}},
	{Index: 25, Name: "Ferris", Planets: []int{7, 180, 178, 176}},
	{Index: 26, Name: "Hanzo", Planets: []int{93, 182, 138, 139, 137}},
	{Index: 27, Name: "Akira", Planets: []int{186, 143, 142, 141, 140}},
	{Index: 28, Name: "Guang", Planets: []int{98, 99, 144, 145, 187}},
	{Index: 29, Name: "Tarragon", Planets: []int{148, 149, 146, 147, 101}},
	{Index: 30, Name: "Alstrad", Planets: []int{190, 188, 189}},
	{Index: 31, Name: "Xzar", Planets: []int{107, 154, 155, 153, 197}},
	{Index: 32, Name: "Nanos", Planets: []int{72, 109, 110, 111}},
	{Index: 33, Name: "Andromeda", Planets: []int{157, 198, 199, 156, 200}},
	{Index: 34, Name: "Hydra", Planets: []int{112, 113, 203}},
	{Index: 35, Name: "Tanis", Planets: []int{117, 161, 162, 163, 250, 251}},
	{Index: 36, Name: "Arturion", Planets: []int{74, 119, 118, 120, 121, 165, 164}},
	{Index: 37, Name: "Falstaff", Planets: []int{124, 75, 122, 123}},
	{Index: 38, Name: "Mirin", Planets: []int{34, 211, 212, 258}},
	{Index: 39, Name: "Jin_Xi", Planets: []int{129, 173, 172, 217, 214, 171}},
	{Index: 40, Name: "Farsight", Planets: []int{175, 219, 218, 221, 220}},
	{Index: 41, Name: "Leo", Planets: []int{177, 179, 223, 222}},
	{Index: 42, Name: "Rigel", Planets: []int{181, 183, 226, 225, 224}},
	{Index: 43, Name: "Omega", Planets: []int{227, 185, 184, 229, 228}},
	{Index: 44, Name: "Xi_Tauri", Planets: []int{231, 230, 233, 232}},
	{Index: 45, Name: "Quintus", Planets: []int{193, 237, 236, 235, 234}},
	{Index: 46, Name: "Severin", Planets: []int{152, 196, 195, 241, 238}},
	{Index: 47, Name: "Lacaille", Planets: []int{115, 160, 159, 194}},
	{Index: 48, Name: "Trigon", Planets: []int{158, 240, 242, 243, 244}},
	{Index: 49, Name: "Ymir", Planets: []int{201, 245, 249, 246, 247}},
	{Index: 50, Name: "Valdis", Planets: []int{114, 202, 204, 205, 260, 248}},
	{Index: 51, Name: "Gellert", Planets: []int{70, 207, 206, 252, 253}},
	{Index: 52, Name: "Hawking", Planets: []int{191, 208, 255, 254}},
	{Index: 53, Name: "L'estrade", Planets: []int{166, 167, 209, 210, 256, 257, 259}},
	{Index: 54, Name: "Sten", Planets: []int{50, 100, 213, 216, 215}},
}
