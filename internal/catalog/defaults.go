package catalog

// Built-in data used when no database is configured. The production catalog
// comes from storage.LoadWeapons and replaces the weapon list but keeps these
// stage/rule tables.

var defaultStages = []Stage{
	{ID: 1, Name: "Scorch Gorge"},
	{ID: 2, Name: "Eeltail Alley"},
	{ID: 3, Name: "Hagglefish Market"},
	{ID: 4, Name: "Undertow Spillway"},
	{ID: 5, Name: "Mincemeat Metalworks"},
	{ID: 6, Name: "Hammerhead Bridge"},
	{ID: 7, Name: "Museum d'Alfonsino"},
	{ID: 8, Name: "Mahi-Mahi Resort"},
	{ID: 9, Name: "Inkblot Art Academy"},
	{ID: 10, Name: "Sturgeon Shipyard"},
	{ID: 11, Name: "MakoMart"},
	{ID: 12, Name: "Wahoo World"},
}

var defaultRules = []Rule{
	{ID: 1, Name: "Splat Zones"},
	{ID: 2, Name: "Tower Control"},
	{ID: 3, Name: "Rainmaker"},
	{ID: 4, Name: "Clam Blitz"},
}

var defaultWeapons = []Weapon{
	{ID: 1, Name: "Splattershot", Attribute: "shooter", SubWeapon: "Suction Bomb", SpecialWeapon: "Trizooka", ImageURL: "/img/weapons/1.png"},
	{ID: 2, Name: "Splattershot Jr.", Attribute: "shooter", SubWeapon: "Splat Bomb", SpecialWeapon: "Big Bubbler", ImageURL: "/img/weapons/2.png"},
	{ID: 3, Name: ".52 Gal", Attribute: "shooter", SubWeapon: "Splash Wall", SpecialWeapon: "Killer Wail 5.1", ImageURL: "/img/weapons/3.png"},
	{ID: 4, Name: ".96 Gal", Attribute: "shooter", SubWeapon: "Sprinkler", SpecialWeapon: "Ink Vac", ImageURL: "/img/weapons/4.png"},
	{ID: 5, Name: "N-ZAP '85", Attribute: "shooter", SubWeapon: "Suction Bomb", SpecialWeapon: "Tacticooler", ImageURL: "/img/weapons/5.png"},
	{ID: 6, Name: "Splash-o-matic", Attribute: "shooter", SubWeapon: "Burst Bomb", SpecialWeapon: "Crab Tank", ImageURL: "/img/weapons/6.png"},
	{ID: 7, Name: "Sploosh-o-matic", Attribute: "shooter", SubWeapon: "Curling Bomb", SpecialWeapon: "Ultra Stamp", ImageURL: "/img/weapons/7.png"},
	{ID: 8, Name: "Aerospray MG", Attribute: "shooter", SubWeapon: "Fizzy Bomb", SpecialWeapon: "Reefslider", ImageURL: "/img/weapons/8.png"},
	{ID: 9, Name: "Splat Roller", Attribute: "roller", SubWeapon: "Curling Bomb", SpecialWeapon: "Big Bubbler", ImageURL: "/img/weapons/9.png"},
	{ID: 10, Name: "Carbon Roller", Attribute: "roller", SubWeapon: "Autobomb", SpecialWeapon: "Zipcaster", ImageURL: "/img/weapons/10.png"},
	{ID: 11, Name: "Dynamo Roller", Attribute: "roller", SubWeapon: "Sprinkler", SpecialWeapon: "Tacticooler", ImageURL: "/img/weapons/11.png"},
	{ID: 12, Name: "Inkbrush", Attribute: "brush", SubWeapon: "Splat Bomb", SpecialWeapon: "Killer Wail 5.1", ImageURL: "/img/weapons/12.png"},
	{ID: 13, Name: "Octobrush", Attribute: "brush", SubWeapon: "Suction Bomb", SpecialWeapon: "Zipcaster", ImageURL: "/img/weapons/13.png"},
	{ID: 14, Name: "Splat Charger", Attribute: "charger", SubWeapon: "Splat Bomb", SpecialWeapon: "Ink Vac", ImageURL: "/img/weapons/14.png"},
	{ID: 15, Name: "E-liter 4K", Attribute: "charger", SubWeapon: "Ink Mine", SpecialWeapon: "Wave Breaker", ImageURL: "/img/weapons/15.png"},
	{ID: 16, Name: "Squiffer", Attribute: "charger", SubWeapon: "Point Sensor", SpecialWeapon: "Big Bubbler", ImageURL: "/img/weapons/16.png"},
	{ID: 17, Name: "Slosher", Attribute: "slosher", SubWeapon: "Splat Bomb", SpecialWeapon: "Triple Inkstrike", ImageURL: "/img/weapons/17.png"},
	{ID: 18, Name: "Tri-Slosher", Attribute: "slosher", SubWeapon: "Toxic Mist", SpecialWeapon: "Inkjet", ImageURL: "/img/weapons/18.png"},
	{ID: 19, Name: "Bloblobber", Attribute: "slosher", SubWeapon: "Sprinkler", SpecialWeapon: "Ink Storm", ImageURL: "/img/weapons/19.png"},
	{ID: 20, Name: "Heavy Splatling", Attribute: "splatling", SubWeapon: "Sprinkler", SpecialWeapon: "Wave Breaker", ImageURL: "/img/weapons/20.png"},
	{ID: 21, Name: "Mini Splatling", Attribute: "splatling", SubWeapon: "Burst Bomb", SpecialWeapon: "Ultra Stamp", ImageURL: "/img/weapons/21.png"},
	{ID: 22, Name: "Hydra Splatling", Attribute: "splatling", SubWeapon: "Autobomb", SpecialWeapon: "Booyah Bomb", ImageURL: "/img/weapons/22.png"},
	{ID: 23, Name: "Dualie Squelchers", Attribute: "dualies", SubWeapon: "Splat Bomb", SpecialWeapon: "Wave Breaker", ImageURL: "/img/weapons/23.png"},
	{ID: 24, Name: "Splat Dualies", Attribute: "dualies", SubWeapon: "Suction Bomb", SpecialWeapon: "Crab Tank", ImageURL: "/img/weapons/24.png"},
	{ID: 25, Name: "Dapple Dualies", Attribute: "dualies", SubWeapon: "Squid Beakon", SpecialWeapon: "Tacticooler", ImageURL: "/img/weapons/25.png"},
	{ID: 26, Name: "Splat Brella", Attribute: "brella", SubWeapon: "Sprinkler", SpecialWeapon: "Triple Inkstrike", ImageURL: "/img/weapons/26.png"},
	{ID: 27, Name: "Tenta Brella", Attribute: "brella", SubWeapon: "Squid Beakon", SpecialWeapon: "Ink Vac", ImageURL: "/img/weapons/27.png"},
	{ID: 28, Name: "Range Blaster", Attribute: "blaster", SubWeapon: "Suction Bomb", SpecialWeapon: "Wave Breaker", ImageURL: "/img/weapons/28.png"},
	{ID: 29, Name: "Luna Blaster", Attribute: "blaster", SubWeapon: "Splat Bomb", SpecialWeapon: "Zipcaster", ImageURL: "/img/weapons/29.png"},
	{ID: 30, Name: "Rapid Blaster", Attribute: "blaster", SubWeapon: "Ink Mine", SpecialWeapon: "Triple Inkstrike", ImageURL: "/img/weapons/30.png"},
	{ID: 31, Name: "Stringer", Attribute: "stringer", SubWeapon: "Toxic Mist", SpecialWeapon: "Killer Wail 5.1", ImageURL: "/img/weapons/31.png"},
	{ID: 32, Name: "Splatana Wiper", Attribute: "splatana", SubWeapon: "Torpedo", SpecialWeapon: "Ultra Stamp", ImageURL: "/img/weapons/32.png"},
}

// Default returns the built-in catalog. Used when DATABASE_URL is unset and
// by tests.
func Default() *Catalog {
	c, err := New(defaultWeapons)
	if err != nil {
		panic(err) // static data, cannot fail
	}
	return c
}
