package gadgets

var Adjectives = []string{
	"able", "absent", "agile", "amber", "ancient", "annual", "brave", "brief",
	"bright", "calm", "clever", "covert", "crafty", "daring", "deep", "distant",
	"eager", "early", "electric", "elegant", "faint", "fast", "fierce", "final",
	"gentle", "giant", "golden", "grim", "hidden", "hollow", "honest", "icy",
	"jolly", "keen", "lucky", "mighty", "modest", "nimble", "noble", "odd",
	"patient", "proud", "quiet", "rapid", "rare", "secret", "sharp", "silent",
	"sleek", "steady", "subtle", "swift", "tiny", "urgent", "vivid", "wild",
}

var Colors = []string{
	"amaranth", "amber", "amethyst", "apricot", "aqua", "aquamarine", "azure",
	"beige", "black", "blue", "blush", "bronze", "brown", "chocolate", "coffee",
	"copper", "coral", "crimson", "cyan", "emerald", "fuchsia", "gold", "gray",
	"green", "harlequin", "indigo", "ivory", "jade", "lavender", "lime", "magenta",
	"maroon", "moccasin", "olive", "orange", "peach", "pink", "plum", "purple",
	"red", "rose", "salmon", "sapphire", "scarlet", "silver", "tan", "teal",
	"tomato", "turquoise", "violet", "white", "yellow",
}

var Animals = []string{
	"albatross", "ant", "badger", "bat", "bear", "beaver", "bison", "boar",
	"buffalo", "camel", "cat", "cheetah", "cobra", "condor", "crane", "crow",
	"deer", "dolphin", "eagle", "eel", "falcon", "ferret", "firefly", "fox",
	"gecko", "gull", "hare", "hawk", "heron", "hyena", "ibis", "jackal",
	"jaguar", "kestrel", "koala", "lemur", "leopard", "lynx", "mamba", "marten",
	"mole", "moth", "narwhal", "octopus", "osprey", "otter", "owl", "panther",
	"raven", "scorpion", "shark", "sparrow", "stingray", "tiger", "viper", "wolf",
}
