package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Test() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Verify connectivity to the device management plane",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()

			device, err := deviceClientFromConfig(v, v.GetString("firewall-serial"))
			if err != nil {
				return err
			}
			if err := device.Initialize(cmd.Context()); err != nil {
				return err
			}
			if err := device.CheckConnectivity(cmd.Context()); err != nil {
				return err
			}

			fmt.Println("ok")
			return nil
		},
	}

	cmd.Flags().String("firewall-serial", "", "serial number of a managed firewall to probe through Panorama")

	return cmd
}
