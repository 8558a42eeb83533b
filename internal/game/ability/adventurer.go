package ability

func init() {
	register("adventurer_serious_punch", seriousPunch)
}

// seriousPunch hits the current target for damage plus a share of its max hp.
func seriousPunch(c *Cast) error {
	t, err := c.currentTarget()
	if err != nil {
		return err
	}
	dmg := c.Hero.Damage() + t.MaxHP()*c.Ability.Props.BonusPercentTargetMaxHP/100
	crit := c.rollCrit()
	c.hit(t, c.finalDamage(dmg, crit), crit)
	return nil
}
